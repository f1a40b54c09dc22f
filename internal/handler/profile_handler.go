package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"devconnect/internal/middleware"
	"devconnect/internal/repository"
)

type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"required"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type AddExperienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// GetMyProfile обрабатывает GET /api/profile/me
func (h *Handlers) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	profile, err := h.ProfileService.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "There is no profile for this user", http.StatusBadRequest)
			return
		}
		log.Printf("Ошибка получения профиля: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

// UpsertProfile обрабатывает POST /api/profile
func (h *Handlers) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteErrors(w, http.StatusBadRequest, validationMessages(err, map[string]string{
			"Status": "Status is required",
			"Skills": "Skills is required",
		})...)
		return
	}

	serviceReq := repository.UpsertProfileRequest{
		UserID:         userID,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	}

	profile, err := h.ProfileService.UpsertProfile(r.Context(), serviceReq)
	if err != nil {
		log.Printf("Ошибка сохранения профиля: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

// GetProfiles обрабатывает GET /api/profile
func (h *Handlers) GetProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.ProfileService.GetAllProfiles(r.Context())
	if err != nil {
		log.Printf("Ошибка получения профилей: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, profiles, http.StatusOK)
}

// GetProfileByUserID обрабатывает GET /api/profile/user/{user_id}
func (h *Handlers) GetProfileByUserID(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	profile, err := h.ProfileService.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Profile not found", http.StatusBadRequest)
			return
		}
		log.Printf("Ошибка получения профиля: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

// AddExperience обрабатывает PUT /api/profile/experience
func (h *Handlers) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	var req AddExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteErrors(w, http.StatusBadRequest, validationMessages(err, map[string]string{
			"Title":   "Title is required",
			"Company": "Company is required",
			"From":    "From date is required",
		})...)
		return
	}

	serviceReq := repository.AddExperienceRequest{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	profile, err := h.ProfileService.AddExperience(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "There is no profile for this user", http.StatusBadRequest)
			return
		}
		log.Printf("Ошибка добавления опыта: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

// DeleteExperience обрабатывает DELETE /api/profile/experience/{exp_id}
func (h *Handlers) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	experienceID := mux.Vars(r)["exp_id"]

	profile, err := h.ProfileService.DeleteExperience(r.Context(), userID, experienceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "There is no profile for this user", http.StatusBadRequest)
			return
		}
		log.Printf("Ошибка удаления опыта: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

// DeleteProfile обрабатывает DELETE /api/profile, каскадно удаляя
// посты, профиль и самого пользователя
func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "No token, authorization denied", http.StatusUnauthorized)
		return
	}

	if err := h.ProfileService.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Token is not valid", http.StatusUnauthorized)
			return
		}
		log.Printf("Ошибка удаления аккаунта: %v", err)
		WriteError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]string{"msg": "User deleted"}, http.StatusOK)
}
