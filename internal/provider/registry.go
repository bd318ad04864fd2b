package provider

import (
	"fmt"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/config"
)

// Factory builds a handle for one account from the shared config.
type Factory func(cfg config.Config, creds config.Credentials) (Provider, error)

var registry = map[string]Factory{}

// Register binds a provider name to its factory.
func Register(name string, f Factory) {
	registry[name] = f
}

// New returns a provider handle by name, bound to creds.
func New(name string, cfg config.Config, creds config.Credentials) (Provider, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	return f(cfg, creds)
}
