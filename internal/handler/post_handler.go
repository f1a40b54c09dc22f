package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"devconnect/internal/middleware"
	"devconnect/internal/repository"
	"devconnect/internal/service"
)

type CreatePostRequest struct {
	Text string `json:"text" validate:"required"`
}

// CreatePost обрабатывает POST /api/posts
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteErrors(w, http.StatusBadRequest, validationMessages(err, map[string]string{
			"Text": "Text is required",
		})...)
		return
	}

	serviceReq := repository.CreatePostRequest{
		UserID: userID,
		Text:   req.Text,
	}

	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Token is not valid", http.StatusUnauthorized)
			return
		}
		log.Printf("Ошибка создания поста: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

// GetPosts обрабатывает GET /api/posts, свежие посты первыми
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetPosts(r.Context())
	if err != nil {
		log.Printf("Ошибка получения постов: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

// GetPost обрабатывает GET /api/posts/{post_id}
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["post_id"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
			return
		}
		log.Printf("Ошибка получения поста: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

// DeletePost обрабатывает DELETE /api/posts/{post_id}, удалять может
// только автор
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["post_id"]

	err := h.PostService.DeletePost(r.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, service.ErrNotPostOwner) {
			WriteError(w, "User not authorized", http.StatusUnauthorized)
			return
		}
		log.Printf("Ошибка удаления поста: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]string{"msg": "Post removed"}, http.StatusOK)
}
