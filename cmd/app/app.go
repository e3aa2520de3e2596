package app

import (
	"context"

	"songboard/internal/config"
	"songboard/internal/database"
	"songboard/internal/repository"
	"songboard/internal/service"
	"songboard/internal/songcatalog"
	"songboard/internal/storage"
)

// App wires the dependency graph: store client, object storage, song catalog,
// repositories and services.
func App(ctx context.Context, cfg *config.Config) (*database.Client, *repository.Repository, *service.Service, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	catalog := songcatalog.NewClient(cfg.Spotify)

	repo := repository.NewRepository(db)
	services := service.NewService(repo, cfg, minioClient, catalog)

	return db, repo, services, nil
}
