package service

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"polyglotCMS/internal/apperrors"
	"polyglotCMS/internal/config"
	"polyglotCMS/internal/models"
	"polyglotCMS/internal/repository"
	"polyglotCMS/internal/storage"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Authorize(ctx context.Context, email, password string) (*models.Identity, error)
	IssueSession(identity *models.Identity) (string, error)
	ResolveSession(tokenString string) (*models.Identity, error)
	UploadAvatar(ctx context.Context, userID int64, fileName string, file io.Reader, size int64) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	fields := map[string]string{}

	// email verification
	if !emailPattern.MatchString(req.Email) {
		fields["email"] = "неверный формат email"
	}

	// password verification
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("пароль должен быть не менее %d символов", minPasswordLength)
	}

	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	existingUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, apperrors.Conflict("email уже существует")
	}
	if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}

	user := &models.User{
		Email: req.Email,
		Name:  req.Name,
	}

	// the unique index on email is the last word in a signup race
	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Authorize(ctx context.Context, email, password string) (*models.Identity, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		// не раскрываем, что именно неверно: email или пароль
		if apperrors.IsKind(err, apperrors.KindInternal) {
			return nil, err
		}
		return nil, apperrors.Unauthorized("неверный email или пароль")
	}

	return user.Identity(), nil
}

func (s *authService) IssueSession(identity *models.Identity) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"userId": identity.ID,
		"email":  identity.Email,
		"iat":    now.Unix(),
		"exp":    now.Add(s.cfg.SessionDuration).Unix(),
	}
	if identity.Name != nil {
		claims["name"] = *identity.Name
	}
	if identity.Image != nil {
		claims["image"] = *identity.Image
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("ошибка подписи токена: %w", err))
	}

	return tokenString, nil
}

func (s *authService) ResolveSession(tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	// любая ошибка проверки - просто "не аутентифицирован"
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("недействительный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.Unauthorized("неверный формат claims")
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return nil, apperrors.Unauthorized("неверные данные в токене")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, apperrors.Unauthorized("неверные данные в токене")
	}

	identity := &models.Identity{
		ID:    int64(userID),
		Email: email,
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = &name
	}
	if image, ok := claims["image"].(string); ok {
		identity.Image = &image
	}

	return identity, nil
}

func (s *authService) UploadAvatar(ctx context.Context, userID int64, fileName string, file io.Reader, size int64) (string, error) {
	objectName, imageURL, err := s.storage.UploadAvatar(ctx, userID, fileName, file, size)
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("ошибка загрузки аватара в MinIO: %w", err))
	}

	err = s.userRepo.UpdateAvatar(ctx, userID, imageURL)
	if err != nil {
		s.storage.DeleteAvatar(ctx, objectName)
		return "", err
	}

	return imageURL, nil
}
