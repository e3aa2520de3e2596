package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"songboard/internal/models"
	"songboard/internal/repository"
	"songboard/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, userID, description string, score int, title string, tags []string) (*models.Post, error) {
	args := m.Called(ctx, userID, description, score, title, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetPostByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) SeePosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID string, current *models.Post, attrs service.UpdatePostAttributes) (*repository.PostAttributes, error) {
	args := m.Called(ctx, postID, current, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PostAttributes), args.Error(1)
}

func (m *MockPostService) UpdatePostFlag(ctx context.Context, postID string, flag int) error {
	args := m.Called(ctx, postID, flag)
	return args.Error(0)
}

func (m *MockPostService) GetFlaggedPosts(ctx context.Context, isFlagged int) ([]models.Post, error) {
	args := m.Called(ctx, isFlagged)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) CheckLike(ctx context.Context, like int, postID, userID string) error {
	args := m.Called(ctx, like, postID, userID)
	return args.Error(0)
}

func (m *MockPostService) CreateReply(ctx context.Context, userID, postID, text string) (*models.Reply, error) {
	args := m.Called(ctx, userID, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockPostService) GetReplyOfPost(ctx context.Context, postID, replyID string) (*models.Reply, error) {
	args := m.Called(ctx, postID, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockPostService) DeleteReply(ctx context.Context, postID, replyID string) error {
	args := m.Called(ctx, postID, replyID)
	return args.Error(0)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostService) CheckTags(ctx context.Context, tags []string, inclusive int) ([]models.Post, error) {
	args := m.Called(ctx, tags, inclusive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) CreateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req service.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateRole(ctx context.Context, userID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) UpdateProfileImage(ctx context.Context, userID string, data []byte, extension string) (string, error) {
	args := m.Called(ctx, userID, data, extension)
	return args.String(0), args.Error(1)
}

type MockSongService struct {
	mock.Mock
}

func (m *MockSongService) SearchSongs(ctx context.Context, params service.SongSearchParams, offset int) (*service.SongSearchResult, error) {
	args := m.Called(ctx, params, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SongSearchResult), args.Error(1)
}
