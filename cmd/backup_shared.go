package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	adapterrepo "github.com/nplqhub/revise/internal/adapter/repository"
	"github.com/nplqhub/revise/internal/adapter/docstore"
	"github.com/nplqhub/revise/internal/infrastructure/config"
	"github.com/nplqhub/revise/internal/infrastructure/database"
	"github.com/nplqhub/revise/internal/infrastructure/server"
	"github.com/nplqhub/revise/internal/usecase/catalog"
)

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newCatalogService opens the configured store and builds the snapshot
// service over it. The returned cleanup closes the store.
func newCatalogService() (*catalog.Service, docstore.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := server.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	store, cleanup, err := database.NewStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	repo := adapterrepo.NewContentRepository(store, logger)
	return catalog.NewService(repo, repo), store, cleanup, nil
}

func gzipPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}
