//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"flowtask/internal/api"
	"flowtask/internal/session"
)

// InitializeContainer sets up all dependencies. The navigator receives the
// navigation side effects of auth transitions; each surface (CLI, TUI)
// supplies its own.
func InitializeContainer(nav session.Navigator) (*Container, error) {
	wire.Build(
		ProvideLoader,
		ProvideConfig,

		api.NewChangeRegistry,
		ProvideAPIClient,

		ProvideSessionManager,
		ProvideThemeManager,
		ProvideViewModel,

		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}
