package model

import "time"

// Config holds everything the engine and its wrappers consume. Loaded once,
// passed by reference, never mutated after construction.
type Config struct {
	// BaseCurrency is assumed when a monetary match carries only a symbol
	// that could mean more than one currency.
	BaseCurrency string `mapstructure:"base_currency" yaml:"base_currency"`

	// ConfidenceThreshold is the minimum normalized keyword score before the
	// sector classifier falls back to the section label.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`

	// AllowedCategories is the section-label allow-list for the filter
	// command. Matching is case- and punctuation-insensitive.
	AllowedCategories []string `mapstructure:"allowed_categories" yaml:"allowed_categories"`

	Cache  CacheConfig  `mapstructure:"cache" yaml:"cache"`
	LLM    LLMConfig    `mapstructure:"llm" yaml:"llm"`
	Store  StoreConfig  `mapstructure:"store" yaml:"store"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// CacheConfig controls the classifier memoization cache.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL             time.Duration `mapstructure:"ttl" yaml:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
}

// LLMConfig configures the optional intelligence-report provider.
type LLMConfig struct {
	Provider          string        `mapstructure:"provider" yaml:"provider"` // openai, anthropic, "" = disabled
	Model             string        `mapstructure:"model" yaml:"model"`
	APIKey            string        `mapstructure:"-" yaml:"-"` // env only, never written to disk
	BaseURL           string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
	MaxTokens         int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RequestsPerMinute float64       `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// StoreConfig configures the sqlite persistence layer.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `mapstructure:"verbose" yaml:"verbose"`
	IncludeFooter bool `mapstructure:"include_footer" yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults. The allow-list default is the
// MergerMarket industry set the filter was built against.
func DefaultConfig() *Config {
	return &Config{
		BaseCurrency:        "USD",
		ConfidenceThreshold: 0.7,
		AllowedCategories: []string{
			"Automotive",
			"Computer software",
			"Consumer: Foods",
			"Consumer: Other",
			"Consumer: Retail",
			"Defense",
			"Financial Services",
			"Industrial automation",
			"Industrial products and services",
			"Industrial: Electronics",
			"Services (other)",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:          "",
			MaxTokens:         2000,
			Timeout:           60 * time.Second,
			RequestsPerMinute: 20,
		},
		Store: StoreConfig{
			Enabled: false,
			Path:    "dealbrief.db",
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
