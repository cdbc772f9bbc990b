package config

// Config holds scan settings (in-memory representation).
// Persistence is handled by the internal/db package.
type Config struct {
	TopN        int     `json:"top_n"`        // number of deals returned per scan
	MinValue    float64 `json:"min_value"`    // minimum total notional per order stack
	MaxValue    float64 `json:"max_value"`    // ceiling on the best order's unit price
	MinSecurity float64 `json:"min_security"` // region security threshold, -1 = everywhere
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		TopN:        15,
		MinValue:    1e6,
		MaxValue:    1e12,
		MinSecurity: -1,
	}
}
