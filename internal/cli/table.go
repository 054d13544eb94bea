package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the table command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type encodingRow struct {
	Bits   string `json:"bits" yaml:"bits"`
	XGate  bool   `json:"x_gate" yaml:"x_gate"`
	ZGate  bool   `json:"z_gate" yaml:"z_gate"`
	Result string `json:"result" yaml:"result"`
}

type phaseRow struct {
	Index       int    `json:"index" yaml:"index"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// WriteEncodingTable prints the gate reference table in the given format.
func WriteEncodingTable(w io.Writer, format string) error {
	encodings := domain.Encodings()
	rows := make([]encodingRow, 0, len(encodings))
	for _, e := range encodings {
		rows = append(rows, encodingRow{
			Bits:   e.Bits.String(),
			XGate:  e.ApplyX,
			ZGate:  e.ApplyZ,
			Result: string(e.BellState),
		})
	}

	return writeStructured(w, format, rows, func() string {
		t := newTable("Bits", "X Gate", "Z Gate", "Result")
		for _, r := range rows {
			t.Row(r.Bits, domain.YesNo(r.XGate), domain.YesNo(r.ZGate), r.Result)
		}
		return t.Render()
	})
}

// WritePhases prints the protocol timeline in the given format.
func WritePhases(w io.Writer, format string) error {
	phases := domain.Phases()
	rows := make([]phaseRow, 0, len(phases))
	for _, p := range phases {
		rows = append(rows, phaseRow{Index: int(p.Phase) + 1, Title: p.Title, Description: p.Description})
	}

	return writeStructured(w, format, rows, func() string {
		t := newTable("#", "Phase", "Description")
		for _, r := range rows {
			t.Row(fmt.Sprint(r.Index), r.Title, r.Description)
		}
		return t.Render()
	})
}

func writeStructured(w io.Writer, format string, v any, text func() string) error {
	switch format {
	case "", FormatText:
		_, err := fmt.Fprintln(w, text())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}
