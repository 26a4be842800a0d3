package approval

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
)

// maxFixPreview is how many fixes the summary view shows before
// collapsing the rest behind the details option.
const maxFixPreview = 5

// Prompter runs the interactive approval flow on a terminal.
type Prompter struct {
	store *Store
	out   io.Writer
}

// NewPrompter creates a prompter. The store is used when the reviewer
// chooses to save a request for later; out receives the summary text.
func NewPrompter(store *Store, out io.Writer) *Prompter {
	return &Prompter{store: store, out: out}
}

// RequestApproval shows the proposed fixes for a file and asks the
// reviewer to approve, deny, inspect details, or save for later.
// Saving and interrupting both count as "not approved now".
func (p *Prompter) RequestApproval(ctx context.Context, path string, qualityScore float64, fixes []ProposedFix) (bool, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "brigade approval required")
	fmt.Fprintln(p.out, strings.Repeat("=", 50))
	fmt.Fprintf(p.out, "File: %s\n", path)
	fmt.Fprintf(p.out, "Quality score: %.1f/10\n", qualityScore)
	fmt.Fprintf(p.out, "Fixes proposed: %d\n", len(fixes))

	if len(fixes) > 0 {
		fmt.Fprintln(p.out, "Proposed fixes:")
		for i, fix := range fixes {
			if i == maxFixPreview {
				fmt.Fprintf(p.out, "   ... and %d more fixes\n", len(fixes)-maxFixPreview)
				break
			}
			fmt.Fprintf(p.out, "   %d. %s\n", i+1, fix.Description)
		}
	}

	rl, err := readline.New("   [y]es / [n]o / [d]etails / [s]ave for later: ")
	if err != nil {
		return false, fmt.Errorf("initializing prompt: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			fmt.Fprintln(p.out, "Approval cancelled")
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("reading response: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			fmt.Fprintln(p.out, "Approved")
			return true, nil
		case "n", "no":
			fmt.Fprintln(p.out, "Denied")
			return false, nil
		case "d", "details":
			p.showDetails(fixes)
		case "s", "save":
			if err := p.saveForLater(ctx, path, qualityScore, fixes); err != nil {
				fmt.Fprintf(p.out, "Could not save approval request: %v\n", err)
				continue
			}
			fmt.Fprintln(p.out, "Approval request saved for later review")
			return false, nil
		default:
			fmt.Fprintln(p.out, "   Please enter 'y' (yes), 'n' (no), 'd' (details), or 's' (save)")
		}
	}
}

// showDetails prints severity-annotated detail for every fix.
func (p *Prompter) showDetails(fixes []ProposedFix) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Detailed fix analysis:")
	fmt.Fprintln(p.out, strings.Repeat("-", 40))

	for i, fix := range fixes {
		fmt.Fprintf(p.out, "\n%d. %s\n", i+1, fix.Description)
		if fix.Severity != "" {
			fmt.Fprintf(p.out, "   Severity: %s\n", strings.ToUpper(fix.Severity))
		}
		if fix.Explanation != "" {
			fmt.Fprintf(p.out, "   Fix: %s\n", fix.Explanation)
		}
		if fix.Original != "" && fix.Fixed != "" {
			fmt.Fprintf(p.out, "   Before: %s\n", truncate(fix.Original, 50))
			fmt.Fprintf(p.out, "   After:  %s\n", truncate(fix.Fixed, 50))
		}
	}
	fmt.Fprintln(p.out, strings.Repeat("-", 40))
}

func (p *Prompter) saveForLater(ctx context.Context, path string, qualityScore float64, fixes []ProposedFix) error {
	if p.store == nil {
		return fmt.Errorf("no approval store configured")
	}
	return p.store.Save(ctx, &Request{
		ID:           uuid.NewString(),
		Path:         path,
		QualityScore: qualityScore,
		Fixes:        fixes,
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
