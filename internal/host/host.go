// Package host executes the intents the relay hands back in result
// rows. This is the thin I/O edge: clipboard, text editor. The relay
// itself never touches any of it.
package host

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/shamanicarts/ortr/internal/models"
)

// Execute the intent of a selected result row
func Execute(item models.ResultItem) error {
	switch item.Action.Kind {
	case models.ActionNoop:
		return nil
	case models.ActionCopyToClipboard:
		return copyToClipboard(item.Action.Text)
	case models.ActionOpenInEditor:
		return openInEditor(item.Action.Text)
	}
	return fmt.Errorf("unknown action: %v", item.Action.Kind)
}

func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	ancli.PrintOK("answer copied to clipboard\n")
	return nil
}

// openInEditor writes text to a temp file and opens it with $EDITOR.
// Without an editor configured the file is kept and its path printed,
// so the answer is still reachable.
func openInEditor(text string) error {
	f, err := os.CreateTemp("", "ortr_answer_*.md")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		ancli.PrintOK(fmt.Sprintf("no $EDITOR set, answer written to: '%v'\n", f.Name()))
		return nil
	}
	cmd := exec.Command(editor, f.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor '%v': %w", editor, err)
	}
	return nil
}
