package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/kamusis/patterns-cli/internal/catalog"
	"github.com/kamusis/patterns-cli/internal/config"
)

// loadConfig wraps config.Load with the hint every command shows on failure.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'patterns init' to write a fresh one.", err)
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog (the built-in one unless
// catalog_path is set) with the topics found under topics_dir merged in.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		c, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		cat = c
		logger.Debug("catalog loaded", zap.String("path", cfg.CatalogPath), zap.Int("topics", cat.Len()))
	}

	extra, err := catalog.DiscoverTopics(cfg.TopicsDir)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return cat, nil
	}
	merged, err := cat.WithTopics(extra)
	if err != nil {
		return nil, fmt.Errorf("cannot merge topics from %s: %w", cfg.TopicsDir, err)
	}
	logger.Debug("user topics merged", zap.String("dir", cfg.TopicsDir), zap.Int("count", len(extra)))
	return merged, nil
}

// newRand seeds from the clock when seed is 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
