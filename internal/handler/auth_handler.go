package handlers

import (
	"encoding/json"
	"net/http"

	"polyglotCMS/internal/models"
	"polyglotCMS/internal/repository"
)

type SignupRequest struct {
	Email    string  `json:"email" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Name     *string `json:"name"`
}

type SessionRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Token string           `json:"token"`
	User  *models.Identity `json:"user"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, validatorFields(err))
		return
	}

	serviceReq := repository.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}

	// registering the user; email format and password length are
	// checked by the service
	_, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пользователь успешно создан"}, http.StatusCreated)
}

func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, validatorFields(err))
		return
	}

	// проверка учетных данных; причина отказа не детализируется
	identity, err := h.AuthService.Authorize(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	token, err := h.AuthService.IssueSession(identity)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	// session cookie for browser clients, token in the body for the rest
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	WriteSuccess(w, SessionResponse{Token: token, User: identity}, http.StatusOK)
}
