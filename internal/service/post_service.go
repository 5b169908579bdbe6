package service

import (
	"context"
	"fmt"
	"strings"

	"polyglotCMS/internal/apperrors"
	"polyglotCMS/internal/models"
	"polyglotCMS/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	ListPosts(ctx context.Context, language string) ([]models.Post, error)
	UpdatePost(ctx context.Context, postID int64, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	// collecting all field errors at once, not fail-fast
	fields := map[string]string{}

	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "заголовок не может быть пустым"
	}
	if !models.IsSupportedLanguage(req.Language) {
		fields["language"] = fmt.Sprintf("язык должен быть одним из: %s", strings.Join(models.Languages, ", "))
	}
	if strings.TrimSpace(req.Slug) == "" {
		fields["slug"] = "slug не может быть пустым"
	}
	if req.AuthorID <= 0 {
		fields["authorId"] = "authorId должен быть положительным числом"
	}

	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Language:  req.Language,
		Slug:      req.Slug,
		Published: req.Published,
		AuthorID:  req.AuthorID,
	}

	// уникальность (language, slug) гарантирует составной индекс в БД
	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) ListPosts(ctx context.Context, language string) ([]models.Post, error) {
	if language != "" && !models.IsSupportedLanguage(language) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("язык должен быть одним из: %s", strings.Join(models.Languages, ", ")))
	}

	return p.postRepo.List(ctx, language)
}

func (p *postService) UpdatePost(ctx context.Context, postID int64, req repository.UpdatePostRequest) (*models.Post, error) {
	// language and author are fixed at creation
	if req.Language != nil {
		return nil, apperrors.InvalidOperation("язык поста не может быть изменен")
	}
	if req.AuthorID != nil {
		return nil, apperrors.InvalidOperation("автор поста не может быть изменен")
	}

	if req.Title == nil && req.Content == nil && req.Slug == nil && req.Published == nil {
		return nil, apperrors.InvalidInput("нет полей для обновления")
	}

	fields := map[string]string{}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		fields["title"] = "заголовок не может быть пустым"
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) == "" {
		fields["slug"] = "slug не может быть пустым"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	return p.postRepo.Update(ctx, postID, req)
}

func (p *postService) DeletePost(ctx context.Context, postID int64) error {
	return p.postRepo.Delete(ctx, postID)
}
