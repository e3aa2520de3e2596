package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"songboard/internal/config"
	"songboard/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	UserService service.UserService
	SongService service.SongService
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		PostService: services.Post,
		UserService: services.User,
		SongService: services.Song,
		Cfg:         cfg,
		Validate:    validator.New(),
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
