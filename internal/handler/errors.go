package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"polyglotCMS/internal/apperrors"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse - ответ с ошибками по полям
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: fields})
}

// WriteAppError maps the closed error-kind taxonomy to HTTP status
// codes. Internal causes are logged and never sent to the client.
func WriteAppError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)

	if fields := apperrors.FieldsOf(err); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	switch kind {
	case apperrors.KindInvalidInput, apperrors.KindInvalidOperation:
		WriteError(w, err.Error(), http.StatusBadRequest)
	case apperrors.KindConflict:
		WriteError(w, err.Error(), http.StatusConflict)
	case apperrors.KindNotFound:
		WriteError(w, err.Error(), http.StatusNotFound)
	case apperrors.KindUnauthorized:
		WriteError(w, err.Error(), http.StatusUnauthorized)
	default:
		log.Printf("внутренняя ошибка: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// validatorFields переводит ошибки validator в карту по полям
func validatorFields(err error) map[string]string {
	fields := map[string]string{}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "required":
				fields[jsonFieldName(fieldError.Field())] = "обязательное поле"
			case "email":
				fields[jsonFieldName(fieldError.Field())] = "неверный формат email"
			default:
				fields[jsonFieldName(fieldError.Field())] = "недопустимое значение"
			}
		}
	}

	if len(fields) == 0 {
		fields["body"] = "неверные данные"
	}

	return fields
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "Name":
		return "name"
	case "Title":
		return "title"
	case "Language":
		return "language"
	case "Slug":
		return "slug"
	case "AuthorID":
		return "authorId"
	}
	return structField
}
