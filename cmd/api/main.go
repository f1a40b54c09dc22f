package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"devconnect/cmd/app"
	"devconnect/internal/config"
	handlers "devconnect/internal/handler"
	"devconnect/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)

	auth := middleware.Auth(services.Auth)
	authLimit := middleware.RateLimit(cfg.RateLimit)

	router := mux.NewRouter()

	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	// setting up routes
	router.Handle("/api/users", authLimit(http.HandlerFunc(handler.Register))).Methods(http.MethodPost)
	router.Handle("/api/users/avatar", auth(http.HandlerFunc(handler.UploadAvatar))).Methods(http.MethodPost)

	router.Handle("/api/auth", authLimit(http.HandlerFunc(handler.Login))).Methods(http.MethodPost)
	router.Handle("/api/auth", auth(http.HandlerFunc(handler.GetCurrentUser))).Methods(http.MethodGet)

	router.Handle("/api/profile/me", auth(http.HandlerFunc(handler.GetMyProfile))).Methods(http.MethodGet)
	router.Handle("/api/profile", auth(http.HandlerFunc(handler.UpsertProfile))).Methods(http.MethodPost)
	router.HandleFunc("/api/profile", handler.GetProfiles).Methods(http.MethodGet)
	router.HandleFunc("/api/profile/user/{user_id}", handler.GetProfileByUserID).Methods(http.MethodGet)
	router.Handle("/api/profile/experience", auth(http.HandlerFunc(handler.AddExperience))).Methods(http.MethodPut)
	router.Handle("/api/profile/experience/{exp_id}", auth(http.HandlerFunc(handler.DeleteExperience))).Methods(http.MethodDelete)
	router.Handle("/api/profile", auth(http.HandlerFunc(handler.DeleteProfile))).Methods(http.MethodDelete)

	router.Handle("/api/posts", auth(http.HandlerFunc(handler.CreatePost))).Methods(http.MethodPost)
	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{post_id}", handler.GetPost).Methods(http.MethodGet)
	router.Handle("/api/posts/{post_id}", auth(http.HandlerFunc(handler.DeletePost))).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
