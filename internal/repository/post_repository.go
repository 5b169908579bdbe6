package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"polyglotCMS/internal/apperrors"
	"polyglotCMS/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Language  string `json:"language"`
	Slug      string `json:"slug"`
	Published bool   `json:"published"`
	AuthorID  int64  `json:"authorId"`
}

// UpdatePostRequest - частичное обновление: nil-поля не трогаются.
// Language and AuthorID are immutable and are rejected by the service
// before the request reaches the repository.
type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Slug      *string `json:"slug"`
	Published *bool   `json:"published"`
	Language  *string `json:"language"`
	AuthorID  *int64  `json:"authorId"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts (title, content, language, slug, published, author_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `

	err := r.db.QueryRowxContext(ctx, query,
		post.Title,
		post.Content,
		post.Language,
		post.Slug,
		post.Published,
		post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return mapDBError(err, "ошибка при создании поста")
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("пост с ID %d не найден", postID))
		}
		return nil, mapDBError(err, "ошибка при получении поста")
	}

	return &post, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, language string) ([]models.Post, error) {
	// the result is materialized eagerly, newest first
	posts := []models.Post{}

	var err error
	if language != "" {
		query := `SELECT * FROM posts WHERE language = $1 ORDER BY created_at DESC`
		err = r.db.SelectContext(ctx, &posts, query, language)
	} else {
		query := `SELECT * FROM posts ORDER BY created_at DESC`
		err = r.db.SelectContext(ctx, &posts, query)
	}

	if err != nil {
		return nil, mapDBError(err, "ошибка при получении списка постов")
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, postID int64, req UpdatePostRequest) (*models.Post, error) {
	setClauses := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Content != nil {
		addSet("content", *req.Content)
	}
	if req.Slug != nil {
		addSet("slug", *req.Slug)
	}
	if req.Published != nil {
		addSet("published", *req.Published)
	}

	if len(setClauses) == 0 {
		return nil, apperrors.InvalidInput("нет полей для обновления")
	}

	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, postID)
	query := fmt.Sprintf(`
		UPDATE posts SET %s
		WHERE id = $%d
		RETURNING *
	`, strings.Join(setClauses, ", "), len(args))

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("пост с ID %d не найден", postID))
		}
		return nil, mapDBError(err, "ошибка при обновлении поста")
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return mapDBError(err, "ошибка при удалении поста")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Internal(fmt.Errorf("ошибка при проверке удаленных строк: %w", err))
	}

	if rowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("пост с ID %d не найден", postID))
	}

	return nil
}
