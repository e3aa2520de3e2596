package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"songboard/cmd/app"
	"songboard/internal/config"
	handlers "songboard/internal/handler"
	mw "songboard/internal/middleware"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.LoadConfig()
	if cfg.JWTSecretKey == "" {
		logger.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx := context.Background()
	_, _, services, err := app.App(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to wire dependencies", zap.Error(err))
	}

	handler := handlers.NewHandlers(services, cfg)

	auth := mw.Authenticate(services.Auth)
	postOwner := mw.PostOwnerOrAdmin(services.Post)
	replyOwner := mw.ReplyOwnerOrAdmin(services.Post)
	flagGuard := mw.FlagOnlyNonOwner(services.Post)

	router := mux.NewRouter()
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Users
	router.HandleFunc("/users", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/users/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/users/{userId}", handler.GetUser).Methods(http.MethodGet)
	router.Handle("/users/{userId}",
		mw.Chain(http.HandlerFunc(handler.UpdateUser), mw.AccountOwnerOrAdmin, auth)).Methods(http.MethodPut)
	router.Handle("/users/{userId}",
		mw.Chain(http.HandlerFunc(handler.DeleteUser), mw.AdminOnly, auth)).Methods(http.MethodDelete)
	router.Handle("/users/{userId}/role",
		mw.Chain(http.HandlerFunc(handler.UpdateRole), mw.AdminOnly, auth)).Methods(http.MethodPatch)
	router.Handle("/users/{userId}/profile-image",
		mw.Chain(http.HandlerFunc(handler.UpdateProfileImage), auth)).Methods(http.MethodPatch)

	// Posts
	router.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	router.Handle("/posts",
		mw.Chain(http.HandlerFunc(handler.CreatePost), auth)).Methods(http.MethodPost)
	router.Handle("/posts/flagged",
		mw.Chain(http.HandlerFunc(handler.GetFlaggedPosts), mw.AdminOnly, auth)).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.Handle("/posts/{id}",
		mw.Chain(http.HandlerFunc(handler.UpdatePost), postOwner, auth)).Methods(http.MethodPatch)
	router.Handle("/posts/{id}",
		mw.Chain(http.HandlerFunc(handler.DeletePost), postOwner, auth)).Methods(http.MethodDelete)
	router.Handle("/posts/{id}/likes",
		mw.Chain(http.HandlerFunc(handler.LikePost), auth)).Methods(http.MethodPatch)
	router.Handle("/posts/{id}/replies",
		mw.Chain(http.HandlerFunc(handler.CreateReply), auth)).Methods(http.MethodPatch)
	router.Handle("/posts/{id}/replies/{replyId}",
		mw.Chain(http.HandlerFunc(handler.DeleteReply), replyOwner, auth)).Methods(http.MethodDelete)
	router.Handle("/posts/{id}/flag",
		mw.Chain(http.HandlerFunc(handler.FlagPost), flagGuard, auth)).Methods(http.MethodPatch)

	// Songs
	router.HandleFunc("/songs", handler.SearchSongs).Methods(http.MethodGet)

	chain := mw.Chain(router, mw.CORS, mw.Logging(logger))

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Info("server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, chain); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
