package service

import (
	"polyglotCMS/internal/config"
	"polyglotCMS/internal/repository"
	"polyglotCMS/internal/storage"
)

type Service struct {
	Auth AuthService
	Post PostService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth: NewAuthService(rep.User, storage, cfg),
		Post: NewPostService(rep.Post),
	}
}
