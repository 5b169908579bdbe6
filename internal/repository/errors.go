package repository

import (
	"errors"
	"fmt"
	"github.com/lib/pq"
	"polyglotCMS/internal/apperrors"
)

// postgres error codes we map to the closed taxonomy
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// mapDBError переводит ошибки драйвера в закрытый набор видов ошибок.
// Anything we do not recognize is surfaced as Internal so driver
// details never leak to the client.
func mapDBError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			switch pqErr.Constraint {
			case "users_email_key":
				return apperrors.Conflict("email уже существует")
			case "posts_language_slug_key":
				return apperrors.Conflict("пост с таким slug уже существует для этого языка")
			}
			return apperrors.Conflict("нарушение уникальности")
		case pqForeignKeyViolation:
			return apperrors.InvalidInput("автор с указанным ID не существует")
		case pqCheckViolation:
			return apperrors.InvalidInput("недопустимое значение поля")
		}
	}

	return apperrors.Internal(fmt.Errorf("%s: %w", op, err))
}
