package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/metadata/openlibrary"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/service"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/validation"
)

// ProvideCatalogService provides search, detail caching and export.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	client := do.MustInvoke[*openlibrary.Client](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, client, v, log), nil
}

// ProvideStatsService provides the home and dashboard aggregations.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, log), nil
}

// ProvideUserService provides user account management.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, v, log), nil
}

// ProvideReadingListService provides reading list management.
func ProvideReadingListService(i do.Injector) (*service.ReadingListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReadingListService(storeHandle.Store, v, log), nil
}
