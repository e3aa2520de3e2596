package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"songboard/internal/apperrors"
	"songboard/internal/models"
	"songboard/internal/service"
)

type Middleware func(http.Handler) http.Handler

type contextKey string

const userContextKey contextKey = "user"

// WithUser returns a context carrying the authenticated user. Exported for
// handler tests; production code goes through Authenticate.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser returns the authenticated user, or nil outside an
// authenticated route.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Authenticate verifies the bearer token and stores the user in the context.
func Authenticate(auth service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, "Unauthorized Access", http.StatusUnauthorized)
				return
			}

			user, err := auth.GetUserFromToken(token)
			if err != nil {
				writeError(w, "Unauthorized Access, try relogging", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// AdminOnly must run after Authenticate.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())
		if user == nil || user.Role != "admin" {
			writeError(w, "Privilege too low", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AccountOwnerOrAdmin guards user mutations: the {userId} path variable must
// match the requester unless the requester is an admin.
func AccountOwnerOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())
		userID := mux.Vars(r)["userId"]
		if user == nil || (user.ItemID != userID && user.Role != "admin") {
			writeError(w, "You are not the account owner", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PostOwnerOrAdmin guards post mutations: only the post's owner or an admin
// may proceed. Runs after Authenticate.
func PostOwnerOrAdmin(posts service.PostService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			post, err := posts.GetPostByID(r.Context(), mux.Vars(r)["id"])
			if err != nil {
				writeError(w, apperrors.MessageOf(err), apperrors.StatusOf(err))
				return
			}

			if post.PostedBy != user.ItemID && user.Role != "admin" {
				writeError(w, "Unauthorized Access - Wrong User or Not Admin", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ReplyOwnerOrAdmin guards reply deletion the same way, keyed on the reply's
// author rather than the post's.
func ReplyOwnerOrAdmin(posts service.PostService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			vars := mux.Vars(r)
			reply, err := posts.GetReplyOfPost(r.Context(), vars["id"], vars["replyId"])
			if err != nil {
				writeError(w, apperrors.MessageOf(err), apperrors.StatusOf(err))
				return
			}

			if reply.PostedBy != user.ItemID && user.Role != "admin" {
				writeError(w, "Unauthorized access - wrong user or not admin", http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// FlagOnlyNonOwner guards the flag toggle: any authenticated viewer or admin
// may flag a post except its owner, who is excluded even as admin.
func FlagOnlyNonOwner(posts service.PostService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			post, err := posts.GetPostByID(r.Context(), mux.Vars(r)["id"])
			if err != nil {
				writeError(w, apperrors.MessageOf(err), apperrors.StatusOf(err))
				return
			}

			if post.PostedBy == user.ItemID {
				writeError(w, "Post owners cannot flag their own post", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func Logging(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", recorder.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
