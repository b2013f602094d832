// Package di provides dependency injection configuration for the book discovery server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/config"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/di/providers"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/metadata/openlibrary"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/service"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Metadata layer
	do.Provide(injector, providers.ProvideOpenLibraryClient)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideReadingListService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*validation.Validator](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*openlibrary.Client](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.CatalogService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.StatsService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.UserService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.ReadingListService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
