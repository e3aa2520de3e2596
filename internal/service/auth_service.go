package service

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"songboard/internal/apperrors"
	"songboard/internal/config"
	"songboard/internal/database"
	"songboard/internal/models"
	"songboard/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	CreateToken(user *models.User) (string, error)
	GetUserFromToken(tokenString string) (*models.User, error)
}

// Claims carries the user identity inside the session token.
type Claims struct {
	ItemID   string `json:"itemID"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	existing, err := s.userRepo.QueryByUsername(ctx, username)
	if err != nil {
		return nil, "", apperrors.Upstream(http.StatusInternalServerError, err)
	}
	if existing != nil {
		return nil, "", apperrors.Conflict("Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.Upstream(http.StatusInternalServerError, err)
	}

	user := &models.User{
		Class:    database.ClassUser,
		ItemID:   uuid.New().String(),
		Username: username,
		Password: string(hashed),
		Role:     "user",
	}

	if err := s.userRepo.PutUser(ctx, user); err != nil {
		return nil, "", apperrors.Upstream(http.StatusInternalServerError, err)
	}

	token, err := s.CreateToken(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.QueryByUsername(ctx, username)
	if err != nil {
		return nil, "", apperrors.Upstream(http.StatusInternalServerError, err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", apperrors.Validation("Invalid username/password")
	}

	token, err := s.CreateToken(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (s *authService) CreateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		ItemID:   user.ItemID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return signed, nil
}

func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("Unauthorized Access, try relogging")
	}

	return &models.User{
		ItemID:   claims.ItemID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
