package main

import (
	"fmt"
	"log"
	"net/http"
	"polyglotCMS/cmd/app"
	"polyglotCMS/internal/config"
	handlers "polyglotCMS/internal/handler"
	"polyglotCMS/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, services, i18nProvider := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, i18nProvider, db, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handler.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/signup", handler.Signup).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/session", handler.CreateSession).Methods(http.MethodPost)

	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)
	router.HandleFunc("/api/me/avatar", handler.UploadAvatar).Methods(http.MethodPost)

	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	router.HandleFunc("/api/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)

	router.HandleFunc("/api/messages/{locale}", handler.GetMessages).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(services.Auth),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
