package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/superdense/internal/presentation/tui"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/aretw0/superdense/pkg/runner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// InteractiveOptions configures the interactive host.
type InteractiveOptions struct {
	In  io.Reader
	Out io.Writer
	// Text forces the line based prompt even on a terminal.
	Text   bool
	Quiet  bool
	Runner []runner.Option
}

// RunInteractive starts the TUI on a terminal and the line prompt otherwise.
func RunInteractive(ctx context.Context, engine ports.StatelessEngine, opts InteractiveOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	r := runner.New(engine, opts.Runner...)

	if !opts.Text && isTerminal(opts.In) && isTerminal(opts.Out) {
		return runTUI(ctx, r, opts)
	}
	return RunPrompt(ctx, r, opts.In, opts.Out)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runTUI(ctx context.Context, r *runner.Runner, opts InteractiveOptions) error {
	if !opts.Quiet {
		tui.PrintBanner(opts.Out)
	}
	model := tui.NewModel(ctx, r, tui.WithMarkdownRenderer(tui.NewRenderer()))
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(opts.In),
		tea.WithOutput(opts.Out),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

const promptHelp = `Commands:
  1 / 2      cycle the first / second bit (unset, 0, 1)
  bits XY    set both bits, e.g. "bits 10"
  g          toggle gate cutting
  s          start the simulation and wait for the result
  t          show the tutorial
  q          quit`

// RunPrompt drives r from line commands. Each run is awaited before the next prompt.
func RunPrompt(ctx context.Context, r *runner.Runner, in io.Reader, out io.Writer) error {
	handler := runner.NewTextHandler(out)
	unsubscribe := r.Subscribe(handler.Handle)
	defer unsubscribe()

	fmt.Fprintln(out, promptHelp)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		quit, err := promptCommand(ctx, r, strings.Fields(scanner.Text()), out)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func promptCommand(ctx context.Context, r *runner.Runner, fields []string, out io.Writer) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	input := r.Snapshot().Input

	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return true, nil
	case "1":
		return false, r.SelectBit(ctx, domain.SlotFirst, input.Bits.First.Next())
	case "2":
		return false, r.SelectBit(ctx, domain.SlotSecond, input.Bits.Second.Next())
	case "bits":
		if len(fields) != 2 {
			return false, errors.New("usage: bits XY")
		}
		pair, err := domain.ParseBitPair(fields[1])
		if err != nil {
			return false, err
		}
		input.Bits = pair
		return false, r.SetInput(ctx, input)
	case "g":
		return false, r.SetGateCutting(ctx, !input.GateCutting)
	case "s", "start":
		if err := r.Start(ctx); err != nil {
			// Already printed by the text handler.
			if errors.Is(err, domain.ErrBitsRequired) {
				return false, nil
			}
			return false, err
		}
		_, err := r.Drain(ctx)
		return false, err
	case "t", "tutorial":
		fmt.Fprintln(out, domain.TutorialMarkdown())
		fmt.Fprintln(out, domain.EncodingTableMarkdown())
		return false, nil
	case "h", "help", "?":
		fmt.Fprintln(out, promptHelp)
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
}
