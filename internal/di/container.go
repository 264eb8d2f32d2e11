// Package di wires the application dependency graph.
package di

import (
	"flowtask/internal/api"
	"flowtask/internal/infrastructure/config"
	"flowtask/internal/session"
	"flowtask/internal/tasklist"
	"flowtask/internal/theme"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Loader *config.Loader

	Changes *api.ChangeRegistry
	API     *api.Client

	Session *session.Manager
	Theme   *theme.Manager
	Tasks   *tasklist.ViewModel
}

// Provider functions

func ProvideLoader() (*config.Loader, error) {
	return config.NewLoader()
}

func ProvideConfig(loader *config.Loader) (*config.Config, error) {
	return loader.Load()
}

func ProvideAPIClient(cfg *config.Config, changes *api.ChangeRegistry) *api.Client {
	return api.New(cfg.Server.BaseURL, cfg.Timeout(), changes)
}

func ProvideSessionManager(client *api.Client, nav session.Navigator) *session.Manager {
	return session.NewManager(client, nav)
}

func ProvideThemeManager(loader *config.Loader) *theme.Manager {
	return theme.NewManager(loader)
}

func ProvideViewModel(client *api.Client) *tasklist.ViewModel {
	return tasklist.NewViewModel(client)
}
