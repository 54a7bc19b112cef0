package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(loginOrEmail, password string) (accessToken, refreshToken string, err error)
	RefreshAccessToken(userID string) (string, error)
	Logout(userID string) error
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
	JWTRefreshTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	repo       Repository
	jwtManager JWTManagerInterface
}

func NewAuthService(repo Repository, jwtManager JWTManagerInterface) Service {
	return &service{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

func newHashToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *service) Login(loginOrEmail, password string) (string, string, error) {
	user, err := s.repo.getUserByLoginOrEmail(loginOrEmail)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	// Fresh hash token per login; earlier refresh tokens stop validating.
	hashToken, err := newHashToken()
	if err != nil {
		return "", "", err
	}
	if err := s.repo.updateHashToken(user.ID, hashToken); err != nil {
		return "", "", err
	}

	accessToken, err := s.jwtManager.GenerateAccessJWT(user.ID)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(user.ID, hashToken)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *service) RefreshAccessToken(userID string) (string, error) {
	return s.jwtManager.GenerateAccessJWT(userID)
}

// Logout rotates the stored hash token, which invalidates every outstanding
// refresh token for the user.
func (s *service) Logout(userID string) error {
	hashToken, err := newHashToken()
	if err != nil {
		return err
	}
	return s.repo.updateHashToken(userID, hashToken)
}
