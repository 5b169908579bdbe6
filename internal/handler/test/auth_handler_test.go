package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"polyglotCMS/internal/apperrors"
	"polyglotCMS/internal/models"
	"polyglotCMS/internal/repository"
)

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}

func postJSON(path string, body interface{}) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignupHandler_Success(t *testing.T) {
	// Arrange
	mockAuthService := new(MockAuthService)
	handler := createTestHandler(mockAuthService, nil)

	mockAuthService.On("Register", mock.Anything, repository.CreateUserRequest{
		Email:    "a@b.com",
		Password: "secret1",
	}).Return(&models.User{ID: 1, Email: "a@b.com"}, nil)

	req := postJSON("/api/auth/signup", map[string]interface{}{
		"email":    "a@b.com",
		"password": "secret1",
	})
	rr := httptest.NewRecorder()

	// Act
	handler.Signup(rr, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rr.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "Пользователь успешно создан", response["message"])

	mockAuthService.AssertExpectations(t)
}

func TestSignupHandler_MissingFields(t *testing.T) {
	// Arrange
	mockAuthService := new(MockAuthService)
	handler := createTestHandler(mockAuthService, nil)

	req := postJSON("/api/auth/signup", map[string]interface{}{
		"email": "a@b.com",
	})
	rr := httptest.NewRecorder()

	// Act
	handler.Signup(rr, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var response struct {
		Errors map[string]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "password")

	mockAuthService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestSignupHandler_InvalidInput(t *testing.T) {
	// Arrange
	mockAuthService := new(MockAuthService)
	handler := createTestHandler(mockAuthService, nil)

	mockAuthService.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.Validation(map[string]string{
			"email":    "неверный формат email",
			"password": "пароль должен быть не менее 6 символов",
		}))

	req := postJSON("/api/auth/signup", map[string]interface{}{
		"email":    "bad-email",
		"password": "123",
	})
	rr := httptest.NewRecorder()

	// Act
	handler.Signup(rr, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var response struct {
		Errors map[string]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "email")
	assert.Contains(t, response.Errors, "password")
}

func TestSignupHandler_EmailAlreadyExists(t *testing.T) {
	// Arrange
	mockAuthService := new(MockAuthService)
	handler := createTestHandler(mockAuthService, nil)

	mockAuthService.On("Register", mock.Anything, repository.CreateUserRequest{
		Email:    "existing@example.com",
		Password: "password123",
	}).Return(nil, apperrors.Conflict("email уже существует"))

	req := postJSON("/api/auth/signup", map[string]interface{}{
		"email":    "existing@example.com",
		"password": "password123",
	})
	rr := httptest.NewRecorder()

	// Act
	handler.Signup(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusConflict, "email уже существует")
	mockAuthService.AssertExpectations(t)
}

func TestSignupHandler_WrongMethod(t *testing.T) {
	// Arrange
	mockAuthService := new(MockAuthService)
	handler := createTestHandler(mockAuthService, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/signup", nil)
	rr := httptest.NewRecorder()

	// Act
	handler.Signup(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusMethodNotAllowed, "Method not allowed")
	mockAuthService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

// Test session creation

func TestCreateSessionHandler_Success(t *testing.T) {
	// Arrange
	mockAuthService := new(MockAuthService)
	handler := createTestHandler(mockAuthService, nil)

	identity := &models.Identity{ID: 1, Email: "a@b.com"}

	mockAuthService.On("Authorize", mock.Anything, "a@b.com", "secret1").
		Return(identity, nil)
	mockAuthService.On("IssueSession", identity).
		Return("token-123", nil)

	req := postJSON("/api/auth/session", map[string]interface{}{
		"email":    "a@b.com",
		"password": "secret1",
	})
	rr := httptest.NewRecorder()

	// Act
	handler.CreateSession(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "token-123", response["token"])

	userData, ok := response["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(1), userData["id"])
	assert.Equal(t, "a@b.com", userData["email"])

	// session cookie is set for browser clients
	cookies := rr.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "session_token" {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.Equal(t, "token-123", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)

	mockAuthService.AssertExpectations(t)
}

func TestCreateSessionHandler_InvalidCredentials(t *testing.T) {
	// Arrange
	mockAuthService := new(MockAuthService)
	handler := createTestHandler(mockAuthService, nil)

	mockAuthService.On("Authorize", mock.Anything, "a@b.com", "wrong").
		Return(nil, apperrors.Unauthorized("неверный email или пароль"))

	req := postJSON("/api/auth/session", map[string]interface{}{
		"email":    "a@b.com",
		"password": "wrong",
	})
	rr := httptest.NewRecorder()

	// Act
	handler.CreateSession(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusUnauthorized, "неверный email или пароль")
	mockAuthService.AssertNotCalled(t, "IssueSession", mock.Anything)
}

func TestCreateSessionHandler_BadBody(t *testing.T) {
	// Arrange
	mockAuthService := new(MockAuthService)
	handler := createTestHandler(mockAuthService, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/session", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()

	// Act
	handler.CreateSession(rr, req)

	// Assert
	assertJSONError(t, rr, http.StatusBadRequest, "Неверный формат запроса")
}
