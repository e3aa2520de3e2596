package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"songboard/internal/middleware"
	"songboard/internal/service"
)

type CreatePostRequest struct {
	Title string   `json:"title" validate:"required"`
	Text  string   `json:"text" validate:"required"`
	Score *int     `json:"score" validate:"required"`
	Tags  []string `json:"tags"`
}

type CreateReplyRequest struct {
	Text string `json:"text" validate:"required"`
}

type LikeRequest struct {
	Like *int `json:"like" validate:"required"`
}

type FlagRequest struct {
	Flag *int `json:"flag" validate:"required"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := middleware.CurrentUser(r.Context())

	post, err := h.PostService.CreatePost(r.Context(), user.ItemID, req.Text, *req.Score, req.Title, req.Tags)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "Post successfully created",
		"post":    post,
	}, http.StatusCreated)
}

// GetPosts lists every post, or filters by tags when ?tags=a,b is given.
// ?inclusive=1 (default) matches any tag, ?inclusive=0 requires all of them.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	var tags []string
	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	inclusive := 1
	if raw := r.URL.Query().Get("inclusive"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || (value != 0 && value != 1) {
			WriteError(w, "inclusive must be 0 or 1", http.StatusBadRequest)
			return
		}
		inclusive = value
	}

	posts, err := h.PostService.CheckTags(r.Context(), tags, inclusive)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"posts": posts}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPostByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) GetFlaggedPosts(w http.ResponseWriter, r *http.Request) {
	isFlagged, err := strconv.Atoi(r.URL.Query().Get("isFlagged"))
	if err != nil {
		WriteError(w, "isFlagged must be 0 or 1", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.GetFlaggedPosts(r.Context(), isFlagged)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"posts": posts}, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var attrs service.UpdatePostAttributes
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	current, err := h.PostService.GetPostByID(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	updated, err := h.PostService.UpdatePost(r.Context(), postID, current, attrs)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message":    "Updated post",
		"data":       postID,
		"attributes": updated,
	}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "Deleted post",
		"data":    postID,
	}, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Like == nil || (*req.Like != 1 && *req.Like != -1) {
		WriteError(w, "like must be 1 or -1", http.StatusBadRequest)
		return
	}

	user := middleware.CurrentUser(r.Context())

	if err := h.PostService.CheckLike(r.Context(), *req.Like, postID, user.ItemID); err != nil {
		WriteServiceError(w, err)
		return
	}

	verb := "Liked"
	if *req.Like == -1 {
		verb = "Disliked"
	}
	WriteSuccess(w, map[string]string{
		"message": fmt.Sprintf("%s post %s successfully", verb, postID),
	}, http.StatusOK)
}

func (h *Handlers) CreateReply(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req CreateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := middleware.CurrentUser(r.Context())

	reply, err := h.PostService.CreateReply(r.Context(), user.ItemID, postID, req.Text)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": fmt.Sprintf("Replied to %s successfully", postID),
		"reply":   reply,
	}, http.StatusOK)
}

func (h *Handlers) DeleteReply(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.PostService.DeleteReply(r.Context(), vars["id"], vars["replyId"]); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "Deleted reply",
		"data":    vars["replyId"],
	}, http.StatusOK)
}

// FlagPost toggles the moderation flag. Routing guarantees the requester is
// an authenticated non-owner.
func (h *Handlers) FlagPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req FlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Flag == nil {
		WriteError(w, "flag must be provided in body", http.StatusBadRequest)
		return
	}

	if err := h.PostService.UpdatePostFlag(r.Context(), postID, *req.Flag); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{
		"message": fmt.Sprintf("Flag of post %s set to %d", postID, *req.Flag),
	}, http.StatusOK)
}
