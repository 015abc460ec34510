//go:build wireinject
// +build wireinject

package boot

import (
	"github.com/google/wire"
)

// InitializeApp assembles the whole application from a config file path.
func InitializeApp(configPath string) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
