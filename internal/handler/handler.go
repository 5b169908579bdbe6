package handlers

import (
	"github.com/go-playground/validator/v10"
	"polyglotCMS/internal/config"
	"polyglotCMS/internal/database"
	"polyglotCMS/internal/i18n"
	"polyglotCMS/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	I18n        *i18n.Provider
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, i18nProvider *i18n.Provider, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		PostService: services.Post,
		I18n:        i18nProvider,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}
