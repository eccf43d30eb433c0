// Package command turns the raw launcher input, with the action
// keyword already stripped by the host, into a typed Command. Parsing
// is a total function: any input yields exactly one Command, never an
// error.
package command

import (
	"strings"

	"github.com/shamanicarts/ortr/internal/models"
	"github.com/shamanicarts/ortr/internal/utils"
)

// Sub-command literals. Matching is case-insensitive on the first
// whitespace separated token.
const (
	KeywordSetKey   = "setkey"
	KeywordModels   = "models"
	KeywordSetModel = "setmodel"
)

// Parse the raw trailing text. The delimiter, when non-empty, enables
// the legacy submit-marker mode: the prompt is only considered
// submitted once the delimiter substring shows up, and everything
// before it is the prompt. With an empty delimiter the whole trimmed
// input is the prompt.
//
// Precedence between sub-commands and free-form questions which start
// with a reserved word: an exact first-token match wins for 'setkey'
// and 'setmodel' since any following text is a valid argument to
// them. 'models' takes no argument, so it only wins on exact match
// with nothing after it; 'models of cars' falls through to a
// question.
func Parse(raw, delimiter string) models.Command {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.Command{Kind: models.CommandEmpty}
	}

	first, remainder := utils.FirstToken(trimmed)
	switch strings.ToLower(first) {
	case KeywordSetKey:
		return models.Command{Kind: models.CommandSetKey, Arg: remainder}
	case KeywordSetModel:
		return models.Command{Kind: models.CommandSetModel, Arg: remainder}
	case KeywordModels:
		if remainder == "" {
			return models.Command{Kind: models.CommandListModels}
		}
		// Looks like a genuine question starting with 'models'
	}

	return parseAsk(trimmed, delimiter)
}

func parseAsk(trimmed, delimiter string) models.Command {
	if delimiter == "" {
		return models.Command{Kind: models.CommandAsk, Arg: trimmed}
	}
	before, _, found := strings.Cut(trimmed, delimiter)
	if !found {
		return models.Command{
			Kind: models.CommandEmpty,
			Hint: "end your question with '" + delimiter + "' to submit",
		}
	}
	prompt := strings.TrimSpace(before)
	if prompt == "" {
		return models.Command{Kind: models.CommandEmpty}
	}
	return models.Command{Kind: models.CommandAsk, Arg: prompt}
}
