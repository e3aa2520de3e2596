package service

import (
	"context"
	"net/http"

	"songboard/internal/apperrors"
	"songboard/internal/models"
	"songboard/internal/repository"
	"songboard/internal/storage"
)

type UserService interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*models.User, error)
	UpdateRole(ctx context.Context, userID, role string) error
	DeleteUser(ctx context.Context, userID string) error
	UpdateProfileImage(ctx context.Context, userID string, data []byte, extension string) (string, error)
}

// UpdateUserRequest carries the optional profile fields of a user update.
// Nil keeps the current value; the store write sets the full attribute set.
type UpdateUserRequest struct {
	Username     *string  `json:"username"`
	Bio          *string  `json:"bio"`
	Genres       []string `json:"genres"`
	ProfileImage *string  `json:"profileImage"`
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Upstream(http.StatusInternalServerError, err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User with id %s not found", userID)
	}

	user.Password = ""
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		existing, err := s.userRepo.QueryByUsername(ctx, *req.Username)
		if err != nil {
			return nil, apperrors.Upstream(http.StatusInternalServerError, err)
		}
		if existing != nil && existing.ItemID != userID {
			return nil, apperrors.Conflict("Username already taken")
		}
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Genres != nil {
		user.Genres = req.Genres
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	attrs := repository.ProfileAttributes{
		Username:     user.Username,
		Bio:          user.Bio,
		Genres:       user.Genres,
		ProfileImage: user.ProfileImage,
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, attrs); err != nil {
		return nil, apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return user, nil
}

// UpdateRole promotes a user to admin. Demotion goes through the store
// console, not the API.
func (s *userService) UpdateRole(ctx context.Context, userID, role string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == role {
		return apperrors.Validation("User is already role %s", role)
	}
	if role != "admin" {
		return apperrors.Validation("Cannot demote admin, use AWS console instead")
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	// The store tolerates deletes of unknown ids, so no existence check.
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return apperrors.Upstream(http.StatusInternalServerError, err)
	}
	return nil
}

// UpdateProfileImage uploads the image, then points the profile at the new
// URL. The previous object is removed first so its key is not orphaned.
func (s *userService) UpdateProfileImage(ctx context.Context, userID string, data []byte, extension string) (string, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.storage.UploadImage(ctx, userID, data, extension)
	if err != nil {
		return "", apperrors.Upstream(http.StatusBadGateway, err)
	}

	if user.ProfileImage != "" {
		// Delete the old object before the URL is overwritten, otherwise
		// its key is lost. Failure here leaves an orphan, nothing worse.
		_ = s.storage.DeleteImageByURL(ctx, user.ProfileImage)
	}

	image := url
	if _, err := s.UpdateUser(ctx, userID, UpdateUserRequest{ProfileImage: &image}); err != nil {
		return "", err
	}

	return url, nil
}
