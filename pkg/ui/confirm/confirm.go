// Package confirm provides Confirmer implementations: an interactive
// console dialog, an auto-approver for -y/--yes and dry-run modes, and a
// scripted variant for tests.
package confirm

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/types"
)

// Auto approves every prompt without blocking
type Auto struct{}

// Confirm always returns true
func (Auto) Confirm(string, bool) bool { return true }

// Console asks the user interactively on the terminal. When stdin is not
// a terminal it resolves to the prompt's default instead of blocking.
type Console struct{}

// NewConsole creates an interactive console confirmer
func NewConsole() *Console {
	return &Console{}
}

// Confirm presents a y/n prompt with the given default
func (c *Console) Confirm(prompt string, defaultYes bool) bool {
	logger := logging.GetLogger("ui.confirm")

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		logger.Debug().Bool("default", defaultYes).Msg("stdin is not a terminal, using default answer")
		return defaultYes
	}

	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultYes).
		Show(prompt)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read confirmation, using default answer")
		return defaultYes
	}
	return result
}

// Scripted replays a fixed sequence of answers and records the prompts it
// was asked. Once the sequence is exhausted it returns the default.
type Scripted struct {
	Answers []bool
	Prompts []string
}

// Confirm pops the next scripted answer
func (s *Scripted) Confirm(prompt string, defaultYes bool) bool {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Answers) == 0 {
		return defaultYes
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer
}

// Verify interface compliance
var (
	_ types.Confirmer = Auto{}
	_ types.Confirmer = (*Console)(nil)
	_ types.Confirmer = (*Scripted)(nil)
)
