package models

import "fmt"

// Message is a single chat completions message, role being one of
// 'user', 'assistant' or 'system'
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CommandKind discriminates the parsed command variants
type CommandKind int

const (
	// CommandEmpty is yielded for blank input, or for delimiter-mode
	// input which hasn't been terminated yet
	CommandEmpty CommandKind = iota
	CommandSetKey
	CommandListModels
	CommandSetModel
	CommandAsk
)

func (c CommandKind) String() string {
	switch c {
	case CommandEmpty:
		return "empty"
	case CommandSetKey:
		return "setkey"
	case CommandListModels:
		return "models"
	case CommandSetModel:
		return "setmodel"
	case CommandAsk:
		return "ask"
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

// Command is one parsed launcher input. Arg holds the sub-command
// argument, or the prompt text for CommandAsk. Hint carries live
// feedback for partial input, such as waiting for the delimiter.
type Command struct {
	Kind CommandKind
	Arg  string
	Hint string
}

// ActionKind enumerates what the host should do when the user
// selects a result row
type ActionKind int

const (
	ActionNoop ActionKind = iota
	ActionCopyToClipboard
	ActionOpenInEditor
)

func (a ActionKind) String() string {
	switch a {
	case ActionNoop:
		return "noop"
	case ActionCopyToClipboard:
		return "copy"
	case ActionOpenInEditor:
		return "edit"
	}
	return fmt.Sprintf("unknown(%d)", int(a))
}

// Action is an intent returned to the host. The host owns the actual
// clipboard and editor plumbing, the relay only ever requests it.
type Action struct {
	Kind ActionKind
	Text string
}

// ResultItem is one selectable row returned to the host UI. The first
// item of any result sequence is the default Enter action.
type ResultItem struct {
	Title    string
	Subtitle string
	Action   Action
}

// ModelDescriptor mirrors one entry of the remote model catalog
type ModelDescriptor struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"name"`
	ContextLength int      `json:"context_length"`
	Pricing       *Pricing `json:"pricing,omitempty"`
}

// Pricing as reported by the catalog, in dollars per token. The
// remote serializes these as strings, not numbers
type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// QueryResult is a successful completion answer
type QueryResult struct {
	AnswerText string
	ModelUsed  string
}
