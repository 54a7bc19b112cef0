package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 80
	minEmailLength    = 3
	maxLoginLength    = 30
	minLoginLength    = 5
	minPasswordLength = 10
	bcryptCost        = 12
)

var (
	ErrInvalidEmail       = fmt.Errorf("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address must be between %d and %d characters", minEmailLength, maxEmailLength)
	ErrLoginLength        = fmt.Errorf("login must be between %d and %d characters", minLoginLength, maxLoginLength)
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Register(email, login, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
	UpdateProfile(userID, displayName, homeCurrency string) (*User, error)
}

type userService struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &userService{
		repo: repo,
	}
}

func (s *userService) Register(email, login, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	login = strings.TrimSpace(login)

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return nil, ErrEmailLength
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(login) < minLoginLength || len(login) > maxLoginLength {
		return nil, ErrLoginLength
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.repo.userExistsByLoginOrEmail(login, email)
	if err != nil {
		return nil, ErrInternalError
	}
	if existing != nil {
		if strings.EqualFold(existing.Email, email) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, ErrLoginAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, ErrInternalError
	}
	hashToken, err := newHashToken()
	if err != nil {
		return nil, ErrInternalError
	}

	newUser := &User{
		Email:        email,
		Login:        login,
		PasswordHash: string(passwordHash),
		DisplayName:  login,
		HomeCurrency: "USD",
		HashToken:    hashToken,
	}
	if err := s.repo.createUser(newUser); err != nil {
		return nil, ErrInternalError
	}
	return newUser, nil
}

func (s *userService) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *userService) UpdateProfile(userID, displayName, homeCurrency string) (*User, error) {
	if len(displayName) > 100 {
		return nil, errors.New("display name must be of length less than 100")
	}
	if len(homeCurrency) != 3 {
		return nil, errors.New("home currency must be a 3-letter code")
	}
	if err := s.repo.updateProfile(userID, displayName, strings.ToUpper(homeCurrency)); err != nil {
		return nil, err
	}
	return s.repo.getUserByID(userID)
}

func newHashToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
