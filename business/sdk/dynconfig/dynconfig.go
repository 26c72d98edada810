// Package dynconfig provides runtime configuration lookup over an ordered
// chain of providers. Later providers win, which lets a reloadable file
// overlay environment defaults without a process restart.
package dynconfig

import (
	"strconv"
	"strings"
	"sync"
)

// Provider knows how to resolve a configuration key.
type Provider interface {
	Get(key string) (string, bool)
}

// Config resolves keys against an ordered set of providers.
type Config struct {
	mu        sync.RWMutex
	providers []Provider
}

// New constructs a Config from the given providers. Providers are consulted
// in reverse order so the last one registered takes precedence.
func New(providers ...Provider) *Config {
	return &Config{
		providers: providers,
	}
}

// Get returns the value for the key or the fallback when no provider has it.
func (c *Config) Get(key string, fallback string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(c.providers) - 1; i >= 0; i-- {
		if v, ok := c.providers[i].Get(key); ok {
			return v
		}
	}

	return fallback
}

// GetBool returns the boolean value for the key or the fallback.
func (c *Config) GetBool(key string, fallback bool) bool {
	v := c.Get(key, "")
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}

	return b
}

// GetInt returns the integer value for the key or the fallback.
func (c *Config) GetInt(key string, fallback int) int {
	v := c.Get(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}

	return n
}
