package cli

import (
	"fmt"

	"github.com/vvka-141/repofs/internal/config"
	"github.com/vvka-141/repofs/internal/files/filesystem"
	"github.com/vvka-141/repofs/internal/logging"
	"github.com/vvka-141/repofs/internal/repository"
	"github.com/vvka-141/repofs/pkg/repofs"
)

// openRepository resolves the repository's configuration and mounts it from
// the local filesystem.
func openRepository(repoPath string) (*repository.Repository, error) {
	logger := logging.NewConsoleLogger(rootFlags.verbose)

	cfg, err := config.Resolve(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	logConfigVerbose(logger, cfg)

	registry, err := repository.NewRegistry(cfg)
	if err != nil {
		return nil, err
	}
	return repository.Open(filesystem.NewOSFileSystem(), repoPath, registry, repository.Options{
		PrettyPrint: cfg.EffectivePrettyPrint(),
		Workers:     cfg.EffectiveWorkers(),
		Logger:      logger,
	})
}

// logConfigVerbose logs the effective configuration when verbose mode is enabled.
func logConfigVerbose(logger repofs.Logger, cfg *config.RepositoryConfig) {
	logger.Verbose("Configuration resolved:")
	logger.Verbose("  Pretty print: %t", cfg.EffectivePrettyPrint())
	logger.Verbose("  Workers: %d", cfg.EffectiveWorkers())
	for _, kind := range cfg.KindNames() {
		kc := cfg.Kinds[kind]
		logger.Verbose("  Kind %s: name field %q, %d defaults", kind, kc.NameField, len(kc.Defaults))
	}
}
