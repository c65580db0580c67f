package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/heritage-booking/internal/service/auth/models"
)

// Config параметры аутентификации администратора
type Config struct {
	Secret            string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string // bcrypt
}

// Service выдает и проверяет токены администратора
type Service struct {
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(cfg Config, logger Logger) *Service {
	return &Service{
		cfg:          cfg,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// HashPassword возвращает bcrypt-хэш пароля
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: HashPassword - %v", ErrInternal, err)
	}
	return string(b), nil
}

// Login проверяет учетные данные и выдает HS256 токен
func (s *Service) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	// Хэш проверяется при любом логине
	hashErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password))
	if username != s.cfg.AdminUsername || hashErr != nil {
		s.logger.Warn("Login: invalid credentials for username=%q", username)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()
	exp := now.Add(s.cfg.TokenTTL)
	claims := jwt.MapClaims{
		"sub": username,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: issued token for username=%q", username)
	return &models.LoginResponse{Token: signed, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// ValidateToken проверяет подпись и срок действия токена
func (s *Service) ValidateToken(token string) (*models.Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.timeProvider.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if sub != s.cfg.AdminUsername {
		return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing expiration", ErrInvalidToken)
	}

	return &models.Claims{Subject: sub, ExpiresAt: exp.Time}, nil
}

// IsInvalidToken сообщает, что ошибка связана с самим токеном
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
