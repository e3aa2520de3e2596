package repository

import (
	"context"

	"songboard/internal/database"
	"songboard/internal/models"
)

type UserRepository interface {
	PutUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	QueryByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, attrs ProfileAttributes) error
	UpdateRole(ctx context.Context, userID, role string) error
	DeleteUser(ctx context.Context, userID string) error
}

type PostRepository interface {
	PutPost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	ScanPosts(ctx context.Context) ([]models.Post, error)
	QueryFlagged(ctx context.Context, isFlagged int) ([]models.Post, error)
	UpdatePost(ctx context.Context, postID string, attrs PostAttributes) error
	UpdateFlag(ctx context.Context, postID string, flag int) error
	AppendLike(ctx context.Context, postID string, like models.Like) error
	RemoveLike(ctx context.Context, postID string, index int) error
	AppendReply(ctx context.Context, postID string, reply models.Reply) error
	SetReplies(ctx context.Context, postID string, replies []models.Reply) error
	DeletePost(ctx context.Context, postID string) error
}

// PostAttributes is the fully resolved attribute set written by UpdatePost.
// The update expression SETs all four unconditionally, so callers must fill
// omitted fields from the current record before calling.
type PostAttributes struct {
	Description string `json:"description"`
	Title       string `json:"title"`
	Score       int    `json:"score"`
	IsFlagged   int    `json:"isFlagged"`
}

// ProfileAttributes is the full profile attribute set written by UpdateProfile.
type ProfileAttributes struct {
	Username     string   `json:"username"`
	Bio          string   `json:"bio"`
	Genres       []string `json:"genres"`
	ProfileImage string   `json:"profileImage"`
}

type Repository struct {
	User UserRepository
	Post PostRepository
}

func NewRepository(db *database.Client) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Post: NewPostRepository(db),
	}
}
