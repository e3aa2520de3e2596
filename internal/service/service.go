package service

import (
	"songboard/internal/config"
	"songboard/internal/repository"
	"songboard/internal/songcatalog"
	"songboard/internal/storage"
)

type Service struct {
	Post PostService
	Auth AuthService
	User UserService
	Song SongService
}

func NewService(repo *repository.Repository, cfg *config.Config, storage storage.Storage, catalog songcatalog.Catalog) *Service {
	return &Service{
		Post: NewPostService(repo.Post),
		Auth: NewAuthService(repo.User, cfg),
		User: NewUserService(repo.User, storage),
		Song: NewSongService(catalog, cfg),
	}
}
