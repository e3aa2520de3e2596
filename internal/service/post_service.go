package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"songboard/internal/apperrors"
	"songboard/internal/database"
	"songboard/internal/models"
	"songboard/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, userID, description string, score int, title string, tags []string) (*models.Post, error)
	GetPostByID(ctx context.Context, postID string) (*models.Post, error)
	SeePosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, postID string, current *models.Post, attrs UpdatePostAttributes) (*repository.PostAttributes, error)
	UpdatePostFlag(ctx context.Context, postID string, flag int) error
	GetFlaggedPosts(ctx context.Context, isFlagged int) ([]models.Post, error)
	CheckLike(ctx context.Context, like int, postID, userID string) error
	CreateReply(ctx context.Context, userID, postID, text string) (*models.Reply, error)
	GetReplyOfPost(ctx context.Context, postID, replyID string) (*models.Reply, error)
	DeleteReply(ctx context.Context, postID, replyID string) error
	DeletePost(ctx context.Context, postID string) error
	CheckTags(ctx context.Context, tags []string, inclusive int) ([]models.Post, error)
}

// UpdatePostAttributes carries the optional fields of a post update. Nil means
// the field was omitted and keeps its current value.
type UpdatePostAttributes struct {
	Description *string `json:"description"`
	Title       *string `json:"title"`
	Score       *int    `json:"score"`
	IsFlagged   *int    `json:"isFlagged"`
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// dedupeTags keeps the first occurrence of each tag, preserving input order.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s *postService) CreatePost(ctx context.Context, userID, description string, score int, title string, tags []string) (*models.Post, error) {
	if score < 0 || score > 100 {
		return nil, apperrors.Validation("provided score must be between 0 and 100")
	}

	post := &models.Post{
		Class:       database.ClassPost,
		ItemID:      uuid.New().String(),
		PostedBy:    userID,
		Title:       title,
		Description: description,
		Score:       score,
		IsFlagged:   0,
		Tags:        dedupeTags(tags),
		Replies:     []models.Reply{},
		LikedBy:     []models.Like{},
	}

	if err := s.postRepo.PutPost(ctx, post); err != nil {
		return nil, apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return post, nil
}

func (s *postService) GetPostByID(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, apperrors.Upstream(http.StatusInternalServerError, err)
	}
	if post == nil {
		return nil, apperrors.NotFound("Post not found with id: %s", postID)
	}
	return post, nil
}

func (s *postService) SeePosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.ScanPosts(ctx)
	if err != nil {
		return nil, apperrors.Upstream(http.StatusInternalServerError, err)
	}
	return posts, nil
}

// UpdatePost merges the provided attributes over the current record and writes
// the full resolved set. Omitted fields fall back to the current values because
// the store update sets all four attributes unconditionally.
func (s *postService) UpdatePost(ctx context.Context, postID string, current *models.Post, attrs UpdatePostAttributes) (*repository.PostAttributes, error) {
	if attrs.Description == nil && attrs.Title == nil && attrs.Score == nil && attrs.IsFlagged == nil {
		return nil, apperrors.Validation("No updatable attributes provided. Must provide description, title, flag, or score in body (flag is not valid if you are the poster)")
	}
	if attrs.IsFlagged != nil && (*attrs.IsFlagged < 0 || *attrs.IsFlagged > 1) {
		return nil, apperrors.Validation("provided flag must be a number (0 or 1)")
	}
	if attrs.Score != nil && (*attrs.Score < 0 || *attrs.Score > 100) {
		return nil, apperrors.Validation("provided score must be between 0 and 100")
	}

	resolved := repository.PostAttributes{
		Description: current.Description,
		Title:       current.Title,
		Score:       current.Score,
		IsFlagged:   current.IsFlagged,
	}
	if attrs.Description != nil {
		resolved.Description = *attrs.Description
	}
	if attrs.Title != nil {
		resolved.Title = *attrs.Title
	}
	if attrs.Score != nil {
		resolved.Score = *attrs.Score
	}
	if attrs.IsFlagged != nil {
		resolved.IsFlagged = *attrs.IsFlagged
	}

	if err := s.postRepo.UpdatePost(ctx, postID, resolved); err != nil {
		return nil, apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return &resolved, nil
}

func (s *postService) UpdatePostFlag(ctx context.Context, postID string, flag int) error {
	if flag < 0 || flag > 1 {
		return apperrors.Validation("provided flag must be a number (0 or 1)")
	}

	if err := s.postRepo.UpdateFlag(ctx, postID, flag); err != nil {
		return apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return nil
}

func (s *postService) GetFlaggedPosts(ctx context.Context, isFlagged int) ([]models.Post, error) {
	if isFlagged < 0 || isFlagged > 1 {
		return nil, apperrors.Validation("isFlagged must be 0 or 1")
	}

	posts, err := s.postRepo.QueryFlagged(ctx, isFlagged)
	if err != nil {
		return nil, apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return posts, nil
}

// CheckLike toggles a user's vote on a post. A duplicate vote in the same
// direction conflicts; a vote in the opposite direction removes the old entry
// before appending the new one, keeping at most one entry per user.
//
// The read-remove-append sequence has no conditional guard: two concurrent
// calls for the same (post, user) pair can race between the read and the
// writes. This matches the store's list-append semantics and is accepted;
// see DESIGN.md before changing it.
func (s *postService) CheckLike(ctx context.Context, like int, postID, userID string) error {
	if like != 1 && like != -1 {
		return apperrors.Validation("like must be 1 or -1")
	}

	post, err := s.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	for i, entry := range post.LikedBy {
		if entry.UserID != userID {
			continue
		}
		if entry.Like == like {
			if like == 1 {
				return apperrors.Conflict("You already liked post %s", postID)
			}
			return apperrors.Conflict("You already disliked post %s", postID)
		}
		if err := s.postRepo.RemoveLike(ctx, postID, i); err != nil {
			return apperrors.Upstream(http.StatusInternalServerError, err)
		}
		break
	}

	if err := s.postRepo.AppendLike(ctx, postID, models.Like{UserID: userID, Like: like}); err != nil {
		return apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return nil
}

func (s *postService) CreateReply(ctx context.Context, userID, postID, text string) (*models.Reply, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	reply := models.Reply{
		ItemID:      uuid.New().String(),
		PostedBy:    userID,
		Description: text,
	}

	if err := s.postRepo.AppendReply(ctx, postID, reply); err != nil {
		return nil, apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return &reply, nil
}

func (s *postService) GetReplyOfPost(ctx context.Context, postID, replyID string) (*models.Reply, error) {
	post, err := s.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, reply := range post.Replies {
		if reply.ItemID == replyID {
			return &reply, nil
		}
	}

	return nil, apperrors.NotFound("Reply not found with id: %s", replyID)
}

// DeleteReply filters the reply out and rewrites the full list. Concurrent
// deletes of different replies on the same post can lose one of the deletions;
// the race is inherited from the full-list rewrite and left as is.
func (s *postService) DeleteReply(ctx context.Context, postID, replyID string) error {
	post, err := s.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	remaining := make([]models.Reply, 0, len(post.Replies))
	for _, reply := range post.Replies {
		if reply.ItemID != replyID {
			remaining = append(remaining, reply)
		}
	}
	if len(remaining) == len(post.Replies) {
		return apperrors.NotFound("Reply not found with id: %s", replyID)
	}

	if err := s.postRepo.SetReplies(ctx, postID, remaining); err != nil {
		return apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return nil
}

func (s *postService) DeletePost(ctx context.Context, postID string) error {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return err
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return apperrors.Upstream(http.StatusInternalServerError, err)
	}

	return nil
}

// CheckTags filters the full post corpus by tag. Inclusive mode (1) matches
// posts carrying at least one of the tags; all mode (0) requires every tag.
// An empty tag list returns everything unfiltered.
func (s *postService) CheckTags(ctx context.Context, tags []string, inclusive int) ([]models.Post, error) {
	posts, err := s.SeePosts(ctx)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return posts, nil
	}

	matched := make([]models.Post, 0, len(posts))
	seen := make(map[string]struct{})

	for _, post := range posts {
		if _, ok := seen[post.ItemID]; ok {
			continue
		}
		if matchesTags(&post, tags, inclusive == 1) {
			seen[post.ItemID] = struct{}{}
			matched = append(matched, post)
		}
	}

	return matched, nil
}

func matchesTags(post *models.Post, tags []string, inclusive bool) bool {
	for _, tag := range tags {
		has := post.HasTag(tag)
		if inclusive && has {
			return true
		}
		if !inclusive && !has {
			return false
		}
	}
	return !inclusive
}
