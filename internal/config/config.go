package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LLM providers.
const (
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

// Config is everything the API server reads from the environment.
type Config struct {
	Port     string
	GinMode  string
	Provider string
	Model    string

	OpenAIAPIKey string
	GeminiAPIKey string

	// MaxInputChars bounds free text sent to the model.
	MaxInputChars int

	RateLimitPerSecond float64
	RateLimitBurst     int

	CORSOrigins []string
}

// Load reads the configuration from environment variables. Call
// godotenv.Load first if a .env file should be honoured.
func Load() (*Config, error) {
	c := &Config{
		Port:        getenv("PORT", "3001"),
		GinMode:     os.Getenv("GIN_MODE"),
		Provider:    strings.ToLower(getenv("LLM_PROVIDER", ProviderOpenAI)),
		Model:       os.Getenv("LLM_MODEL"),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}

	var err error
	if c.MaxInputChars, err = getInt("MAX_INPUT_CHARS", 20000); err != nil {
		return nil, err
	}
	if c.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	if c.RateLimitPerSecond, err = getFloat("RATE_LIMIT_PER_SECOND", 2); err != nil {
		return nil, err
	}

	if c.Model == "" {
		c.Model = DefaultModel(c.Provider)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the selected provider is known and has a key.
func (c *Config) Validate() error {
	var missing []string
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case ProviderGoogleAI:
		if c.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		return errors.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
	if c.Port == "" {
		missing = append(missing, "PORT")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.MaxInputChars <= 0 {
		return errors.New("MAX_INPUT_CHARS must be positive")
	}
	if c.RateLimitPerSecond < 0 || c.RateLimitBurst < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	return nil
}

// DefaultModel is the model used when LLM_MODEL is unset.
func DefaultModel(provider string) string {
	if provider == ProviderGoogleAI {
		return "gemini-2.5-flash"
	}
	return "gpt-4o-mini"
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
