// Package container wires the application's dependencies together.
package container

import (
	"gui-actions/internal/app"
	"gui-actions/internal/config"
	"gui-actions/internal/parser"
	"gui-actions/internal/types"

	"go.uber.org/dig"
)

// BuildContainer creates the dependency injection container with all
// application services registered.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(config.NewManager); err != nil {
		return nil, err
	}
	if err := container.Provide(newParser); err != nil {
		return nil, err
	}
	if err := container.Provide(app.NewApp); err != nil {
		return nil, err
	}

	return container, nil
}

// newParser constructs the non-streaming parser, loading the optional
// action-alias table named by the configuration.
func newParser(configManager types.ConfigManager) (*parser.Parser, error) {
	parserConfig := configManager.GetParserConfig()
	aliases, err := config.LoadActionAliases(parserConfig.ActionAliasesFile)
	if err != nil {
		return nil, err
	}
	return parser.NewParser(parserConfig, aliases), nil
}
