package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"devconnect/internal/middleware"
	"devconnect/internal/repository"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Register обрабатывает POST /api/users
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteErrors(w, http.StatusBadRequest, validationMessages(err, map[string]string{
			"Name":     "Name is required",
			"Email":    "Please include a valid email",
			"Password": "Please enter a password with 6 or more characters",
		})...)
		return
	}

	serviceReq := repository.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	_, token, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			WriteErrors(w, http.StatusBadRequest, "User already exists")
			return
		}
		log.Printf("Ошибка регистрации: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, TokenResponse{Token: token}, http.StatusOK)
}

// Login обрабатывает POST /api/auth
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteErrors(w, http.StatusBadRequest, validationMessages(err, map[string]string{
			"Email":    "Please include a valid email",
			"Password": "Password is required",
		})...)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			// одно сообщение для неизвестного email и неверного пароля
			WriteErrors(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		log.Printf("Ошибка входа: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, TokenResponse{Token: token}, http.StatusOK)
}

// GetCurrentUser обрабатывает GET /api/auth, пароль в ответ не попадает
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// идентификатор из токена обязан указывать на живого пользователя
			WriteError(w, "Token is not valid", http.StatusUnauthorized)
			return
		}
		log.Printf("Ошибка получения пользователя: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

// UploadAvatar обрабатывает POST /api/users/avatar
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "File is too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "Avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	avatarURL, err := h.UserService.UploadAvatar(r.Context(), userID, header.Filename, file, header.Size)
	if err != nil {
		log.Printf("Ошибка загрузки аватара: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]string{"avatar": avatarURL}, http.StatusOK)
}
