package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// When glamour cannot be initialized the markdown is returned as is.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DecisionMarkdown describes the outcome of a swap as a markdown report.
func DecisionMarkdown(swap *domain.Swap, decision domain.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Status %d\n\n", swap.Status)
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Band | `%s` |\n", swap.Status.Band())
	fmt.Fprintf(&b, "| Decision | **%s** |\n", decision)
	fmt.Fprintf(&b, "| Swap | %t |\n", swap.ShouldSwap)
	if swap.Target != "" {
		fmt.Fprintf(&b, "| Target | `%s` |\n", swap.Target)
	}
	if swap.HasRetarget() {
		fmt.Fprintf(&b, "| Retarget | `%s` |\n", swap.Retarget)
	}

	b.WriteString("\n")
	switch decision {
	case domain.DecisionProceed:
		b.WriteString("The response is swapped into its target and the loading indicator finishes.\n")
	case domain.DecisionRedirectToModal:
		b.WriteString("The response is swapped into the modal wrapper. The confirm modal is animated in and the plain finish event is suppressed.\n")
	case domain.DecisionShowError:
		b.WriteString("The response is discarded and the error modal is shown.\n")
	}
	return b.String()
}

// DecisionPlain is the single-line form of DecisionMarkdown for pipes and scripts.
func DecisionPlain(swap *domain.Swap, decision domain.Decision) string {
	return fmt.Sprintf("status=%d band=%s decision=%s swap=%t target=%s",
		swap.Status, swap.Status.Band(), decision, swap.ShouldSwap, swap.Target)
}
