package promptbuild

// PromptPair is the system and user message sent to the answer model.
// Single-prompt models receive only User.
type PromptPair struct {
	System string `json:"system,omitempty"`
	User   string `json:"user"`
}

// Style selects how a prompt is laid out for a model.
type Style int

const (
	// StyleChat renders a system instruction plus a sectioned user message.
	StyleChat Style = iota
	// StyleDocument renders one document-QA prompt.
	StyleDocument
)

// StyleForBot returns the prompt style expected by botType.
func StyleForBot(botType string) Style {
	if botType == "llama" {
		return StyleDocument
	}
	return StyleChat
}
