package domain

import (
	"fmt"
	"strings"
)

// TutorialTitle heads the educational section.
const TutorialTitle = "How Superdense Coding Works"

// TutorialIntro is the prose shown above the key points.
const TutorialIntro = "Superdense coding leverages quantum entanglement to transmit two classical bits " +
	"through one quantum particle. Entangled qubits exist in superposition states where operations " +
	"on one instantly affect the other, enabling communication beyond classical limits. " +
	"The Bell measurement decodes the transmitted information."

// TutorialPoints lists the key ideas.
var TutorialPoints = []string{
	"Entangled qubits exist in superposition",
	"Operations on one qubit affect the other instantly",
	"Bell measurement reveals the encoded information",
	"No-cloning theorem ensures security",
}

// TutorialMarkdown renders the educational section and the gate table as Markdown.
func TutorialMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", TutorialTitle, TutorialIntro)
	for _, p := range TutorialPoints {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	b.WriteString("\n")
	b.WriteString(EncodingTableMarkdown())
	return b.String()
}

// EncodingTableMarkdown renders the gate reference table.
func EncodingTableMarkdown() string {
	var b strings.Builder
	b.WriteString("| Bits | X Gate | Z Gate | Result |\n")
	b.WriteString("|------|--------|--------|--------|\n")
	for _, row := range encodingTable {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", row.Bits, YesNo(row.ApplyX), YesNo(row.ApplyZ), row.BellState)
	}
	return b.String()
}
