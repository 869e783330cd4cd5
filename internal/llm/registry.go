// Package llm routes prompts to LLM providers with retry and fallback.
package llm

// Provider identifies an LLM API vendor.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Default logical model names per provider.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-haiku"

	// DefaultCodeModel is preferred for code generation tasks.
	DefaultCodeModel = "claude-sonnet"
)

// ModelInfo describes a logical model the router understands.
type ModelInfo struct {
	Name            string   // logical name
	Provider        Provider
	APIName         string   // identifier sent to the provider API
	MaxInputTokens  int
	MaxOutputTokens int
	Capabilities    []string
}

// registry maps logical model names to provider configurations.
var registry = map[string]ModelInfo{
	"gpt-4o-mini": {
		Name:            "gpt-4o-mini",
		Provider:        ProviderOpenAI,
		APIName:         "gpt-4o-mini",
		MaxInputTokens:  128000,
		MaxOutputTokens: 4096,
		Capabilities:    []string{"text", "code", "reasoning"},
	},
	"gpt-4o": {
		Name:            "gpt-4o",
		Provider:        ProviderOpenAI,
		APIName:         "gpt-4o",
		MaxInputTokens:  128000,
		MaxOutputTokens: 4096,
		Capabilities:    []string{"text", "code", "vision", "reasoning"},
	},
	"claude-haiku": {
		Name:            "claude-haiku",
		Provider:        ProviderAnthropic,
		APIName:         "claude-haiku-4-5-20251001",
		MaxInputTokens:  200000,
		MaxOutputTokens: 8192,
		Capabilities:    []string{"text", "code"},
	},
	"claude-sonnet": {
		Name:            "claude-sonnet",
		Provider:        ProviderAnthropic,
		APIName:         "claude-sonnet-4-5-20250929",
		MaxInputTokens:  200000,
		MaxOutputTokens: 8192,
		Capabilities:    []string{"text", "code", "vision", "reasoning"},
	},
}

// Lookup returns the registry entry for a logical model name.
func Lookup(name string) (ModelInfo, bool) {
	info, ok := registry[name]
	return info, ok
}

// Models returns the logical names of all registered models.
func Models() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Credentials holds the API keys available to the router.
type Credentials struct {
	OpenAIKey    string
	AnthropicKey string
}

// Has reports whether a credential is available for the given provider.
func (c Credentials) Has(p Provider) bool {
	switch p {
	case ProviderOpenAI:
		return c.OpenAIKey != ""
	case ProviderAnthropic:
		return c.AnthropicKey != ""
	}
	return false
}

// Empty reports whether no credential is configured at all.
func (c Credentials) Empty() bool {
	return c.OpenAIKey == "" && c.AnthropicKey == ""
}

// providerDefault returns the default model for a provider.
func providerDefault(p Provider) ModelInfo {
	if p == ProviderAnthropic {
		return registry[DefaultAnthropicModel]
	}
	return registry[DefaultOpenAIModel]
}

// Resolve maps a requested logical model name to the effective model given
// the available credentials. Unknown names resolve to a usable default.
// When the requested model's provider has no credential, the other
// provider's default is substituted and fellBack is true. Resolution fails
// only when no credential is configured at all.
func Resolve(requested string, creds Credentials) (info ModelInfo, fellBack bool, err error) {
	if creds.Empty() {
		return ModelInfo{}, false, ErrNoCredentials
	}

	info, known := registry[requested]
	if requested == "" || !known {
		// Pick the default for whichever provider is usable, preferring
		// OpenAI when both credentials are present.
		if creds.Has(ProviderOpenAI) {
			return registry[DefaultOpenAIModel], false, nil
		}
		return registry[DefaultAnthropicModel], false, nil
	}

	if creds.Has(info.Provider) {
		return info, false, nil
	}

	// Requested model's provider has no credential: switch to the other
	// provider's default instead of failing.
	if info.Provider == ProviderOpenAI {
		return providerDefault(ProviderAnthropic), true, nil
	}
	return providerDefault(ProviderOpenAI), true, nil
}
