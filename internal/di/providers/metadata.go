package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/config"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/metadata/openlibrary"
)

// ProvideOpenLibraryClient provides the rate-limited OpenLibrary client.
func ProvideOpenLibraryClient(i do.Injector) (*openlibrary.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := openlibrary.NewClient(log,
		openlibrary.WithBaseURL(cfg.OpenLibrary.BaseURL),
		openlibrary.WithCoverBaseURL(cfg.OpenLibrary.CoverBaseURL),
		openlibrary.WithTimeout(cfg.OpenLibrary.Timeout),
		openlibrary.WithRequestsPerSecond(cfg.OpenLibrary.RequestsPerSecond),
	)

	log.Info("OpenLibrary client configured",
		"base_url", cfg.OpenLibrary.BaseURL,
		"requests_per_second", cfg.OpenLibrary.RequestsPerSecond,
	)

	return client, nil
}
