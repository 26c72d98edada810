package dynconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ViperProvider resolves keys from a yaml file and keeps the values fresh
// by watching the file for changes.
type ViperProvider struct {
	v *viper.Viper
}

// NewViperProvider constructs a provider backed by the given file. A missing
// file is not an error, the provider just resolves nothing until one shows up.
func NewViperProvider(path string) (*ViperProvider, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	} else {
		v.WatchConfig()
	}

	return &ViperProvider{v: v}, nil
}

// Get implements the Provider interface.
func (p *ViperProvider) Get(key string) (string, bool) {
	if !p.v.IsSet(key) {
		return "", false
	}

	return p.v.GetString(key), true
}

// EnvProvider resolves keys from the process environment. Keys are uppercased
// and dots become underscores, so "payments.checkout_url" reads
// PREFIX_PAYMENTS_CHECKOUT_URL.
type EnvProvider struct {
	prefix string
}

// NewEnvProvider constructs a provider with the given prefix.
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{prefix: prefix}
}

// Get implements the Provider interface.
func (p *EnvProvider) Get(key string) (string, bool) {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if p.prefix != "" {
		name = p.prefix + "_" + name
	}

	return os.LookupEnv(name)
}
