package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"polyglotCMS/internal/apperrors"
	"polyglotCMS/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("ошибка при хешировании пароля: %w", err))
	}

	user.PasswordHash = string(hashedPassword)

	query := `
		INSERT INTO users (email, password_hash, name, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.Name, user.Image).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return mapDBError(err, "ошибка при создании пользователя")
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("пользователь с ID %d не найден", userID))
		}
		return nil, mapDBError(err, "ошибка при получении пользователя")
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("пользователь с таким email не найден")
		}
		return nil, mapDBError(err, "ошибка при получении пользователя по email")
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, apperrors.Unauthorized("неверный пароль")
	}

	return user, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID int64, imageURL string) error {
	query := `UPDATE users SET image = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, imageURL, userID)
	if err != nil {
		return mapDBError(err, "ошибка при обновлении аватара")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Internal(fmt.Errorf("ошибка при проверке обновленных строк: %w", err))
	}

	if rowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("пользователь с ID %d не найден", userID))
	}

	return nil
}
