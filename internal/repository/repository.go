package repository

import (
	"context"
	"github.com/jmoiron/sqlx"
	"polyglotCMS/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID int64, imageURL string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, language string) ([]models.Post, error)
	Update(ctx context.Context, postID int64, req UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, postID int64) error
}

type Repository struct {
	User UserRepository
	Post PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Post: NewPostRepository(db),
	}
}
