package app

import (
	"log"
	"polyglotCMS/internal/config"
	"polyglotCMS/internal/database"
	"polyglotCMS/internal/i18n"
	"polyglotCMS/internal/repository"
	"polyglotCMS/internal/service"
	"polyglotCMS/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service, *i18n.Provider) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// locale catalogs
	i18nProvider, err := i18n.NewProvider(cfg.LocalesDir, cfg.DefaultLocale)
	if err != nil {
		log.Fatalf("Не удалось загрузить локали: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, services, i18nProvider
}
