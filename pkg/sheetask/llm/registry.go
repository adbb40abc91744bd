// Package llm dispatches a question and its spreadsheet context to a model provider.
package llm

// Provider identifies a model vendor.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
)

// Model is one selectable registry entry.
type Model struct {
	// ID is the provider's model identifier.
	ID string `json:"id" yaml:"id"`
	// Label is the display name.
	Label string `json:"label" yaml:"label"`
	// Provider is the vendor serving the model.
	Provider Provider `json:"provider" yaml:"provider"`
}

// DefaultModelID is selected when the user has no stored preference.
const DefaultModelID = "claude-sonnet-4-5-20250929"

// DefaultModels is the built-in model registry.
var DefaultModels = []Model{
	{ID: "claude-sonnet-4-5-20250929", Label: "Claude Sonnet 4.5", Provider: ProviderAnthropic},
	{ID: "claude-haiku-4-5-20251001", Label: "Claude Haiku 4.5", Provider: ProviderAnthropic},
	{ID: "claude-opus-4-6", Label: "Claude Opus 4.6", Provider: ProviderAnthropic},
	{ID: "gpt-5.2", Label: "GPT-5.2", Provider: ProviderOpenAI},
	{ID: "gpt-4.1", Label: "GPT-4.1", Provider: ProviderOpenAI},
	{ID: "gpt-4o", Label: "GPT-4o", Provider: ProviderOpenAI},
	{ID: "gemini-2.5-flash", Label: "Gemini 2.5 Flash", Provider: ProviderGoogle},
	{ID: "gemini-2.5-pro", Label: "Gemini 2.5 Pro", Provider: ProviderGoogle},
}

// Registry is an ordered, static table of models.
type Registry []Model

// Lookup returns the model with the given id.
func (r Registry) Lookup(id string) (Model, bool) {
	for _, m := range r {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}
