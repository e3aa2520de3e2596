package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"

	"songboard/internal/middleware"
	"songboard/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type ProfileImageRequest struct {
	Image *struct {
		Mime string `json:"mime"`
		Data string `json:"data"`
	} `json:"image"`
}

var (
	alphanumericRe = regexp.MustCompile(`[A-Za-z0-9]`)
	specialCharRe  = regexp.MustCompile(`[^A-Za-z0-9]`)
	digitRe        = regexp.MustCompile(`\d`)
)

func validateCredentials(username, password string) string {
	if len(username) < 4 {
		return "Username must be at least 4 characters long"
	}
	if !alphanumericRe.MatchString(username) {
		return "Username must contain a letter or number"
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters long"
	}
	if !specialCharRe.MatchString(password) || !digitRe.MatchString(password) {
		return "Password must contain a special character and a number"
	}
	return ""
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if msg := validateCredentials(req.Username, req.Password); msg != "" {
		WriteError(w, msg, http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "User successfully registered",
		"user":    user,
		"token":   token,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "Successfully logged in",
		"user":    user,
		"token":   token,
	}, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUserByID(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"user": user}, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.UserService.UpdateUser(r.Context(), userID, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// The token embeds the username, so a rename invalidates the old one.
	token, err := h.AuthService.CreateToken(updated)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message":      "User " + userID + " has been updated",
		"newUserInfo":  updated,
		"updatedToken": token,
	}, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "Deleted user",
		"data":    userID,
	}, http.StatusOK)
}

func (h *Handlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Role != "user" && req.Role != "admin" {
		WriteError(w, "Invalid role "+req.Role, http.StatusBadRequest)
		return
	}

	if err := h.UserService.UpdateRole(r.Context(), userID, req.Role); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{
		"message": "User role changed to " + req.Role,
	}, http.StatusOK)
}

func (h *Handlers) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	requester := middleware.CurrentUser(r.Context())
	if requester.Role != "admin" && requester.ItemID != userID {
		WriteError(w, "You are not the account owner", http.StatusUnauthorized)
		return
	}

	var req ProfileImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Image == nil {
		WriteError(w, "No image data provided in body. Should follow the format {image: {mime: string, data: string}}", http.StatusBadRequest)
		return
	}
	if req.Image.Data == "" || req.Image.Mime == "" {
		WriteError(w, "data and mime must be defined in image data", http.StatusBadRequest)
		return
	}

	parts := strings.SplitN(req.Image.Mime, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		WriteError(w, "mime format incorrect. must follow 'image/<extension>'", http.StatusBadRequest)
		return
	}
	extension := parts[1]

	data, err := base64.StdEncoding.DecodeString(req.Image.Data)
	if err != nil {
		WriteError(w, "image data must be base64 encoded", http.StatusBadRequest)
		return
	}

	url, err := h.UserService.UpdateProfileImage(r.Context(), userID, data, extension)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"updatedImageURL": url}, http.StatusOK)
}
