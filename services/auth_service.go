package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cooldeal/entity"
	"cooldeal/repository"
	"cooldeal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLen = 6

type AuthService struct {
	DB        *gorm.DB
	Users     *repository.UserRepository
	Customers *repository.CustomerRepository
	Tokens    *repository.TokenRepository
	Sessions  *repository.SessionRepository
	Mailer    Mailer
	Log       *zap.Logger
	Secret    string
	TTL       time.Duration
	PublicURL string
	Now       func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	users *repository.UserRepository,
	customers *repository.CustomerRepository,
	tokens *repository.TokenRepository,
	sessions *repository.SessionRepository,
	mailer Mailer,
	log *zap.Logger,
	secret string, ttl time.Duration, publicURL string,
) *AuthService {
	return &AuthService{
		DB: db, Users: users, Customers: customers, Tokens: tokens, Sessions: sessions, Mailer: mailer, Log: log,
		Secret: secret, TTL: ttl, PublicURL: publicURL, Now: time.Now,
	}
}

var validate = validator.New()

func validEmail(s string) bool { return validate.Var(s, "required,email") == nil }

// Login accepts a username or an email.
func (s *AuthService) Login(login, password string) (*entity.User, string, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	u, err := s.Users.FindByLogin(login)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	tok, err := utils.GenerateToken(u.ID, u.Role, s.Secret, s.TTL)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// AttachSession records who signed in on the visitor session; nil detaches it.
func (s *AuthService) AttachSession(key string, userID *uint) error {
	if key == "" {
		return nil
	}
	return s.Sessions.AttachUser(key, userID)
}

type RegisterIn struct {
	LastName     string `form:"nom"`
	FirstName    string `form:"prenoms"`
	Username     string `form:"username"`
	Email        string `form:"email"`
	Phone        string `form:"phone"`
	City         string `form:"ville"`
	Address      string `form:"adresse"`
	Password     string `form:"password"`
	PasswordConf string `form:"passwordconf"`
	Photo        string `form:"-"`
}

// CheckRegistration validates the form before any file is written.
func (s *AuthService) CheckRegistration(in *RegisterIn) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.LastName == "" || in.FirstName == "" || in.Password == "" {
		return ErrMissingFields
	}
	if !validEmail(in.Email) {
		return ErrInvalidEmail
	}
	if in.Password != in.PasswordConf {
		return ErrPasswordMismatch
	}
	if len(in.Password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	if n, err := s.Users.CountByUsername(s.DB, in.Username); err != nil {
		return err
	} else if n > 0 {
		return ErrUsernameTaken
	}
	if n, err := s.Users.CountByEmail(s.DB, in.Email); err != nil {
		return err
	} else if n > 0 {
		return ErrEmailTaken
	}
	return nil
}

// Register creates the user and its customer profile together.
func (s *AuthService) Register(in *RegisterIn) (*entity.Customer, error) {
	if err := s.CheckRegistration(in); err != nil {
		return nil, err
	}
	if in.Photo == "" {
		return nil, ErrMissingFields
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var cust entity.Customer
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		u := entity.User{
			Username:  in.Username,
			Email:     in.Email,
			Password:  string(hash),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Role:      entity.RoleCustomer,
		}
		if err := s.Users.Create(tx, &u); err != nil {
			return err
		}
		cust = entity.Customer{
			UserID:   u.ID,
			User:     u,
			Address:  in.Address,
			Photo:    in.Photo,
			Contact1: in.Phone,
			City:     in.City,
		}
		return s.Customers.Create(tx, &cust)
	})
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func newResetToken() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }

// RequestPasswordReset mails a reset link. Unknown addresses succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	u, err := s.Users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token := newResetToken()
	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Tokens.Upsert(tx, u.ID, token, s.Now())
	}); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/customer/reset-password/%s", s.PublicURL, token)
	body := fmt.Sprintf("Bonjour %s,\n\nPour réinitialiser votre mot de passe, suivez ce lien (valable une heure) :\n%s\n\nL'équipe CoolDeal",
		u.FirstName, link)
	if err := s.Mailer.Send(ctx, u.Email, "Réinitialisation de votre mot de passe", body); err != nil {
		s.Log.Error("send reset mail", zap.Uint("user_id", u.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *AuthService) CheckResetToken(token string) (*entity.PasswordResetToken, error) {
	t, err := s.Tokens.FindByToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if !t.IsValid(s.Now()) {
		return nil, ErrTokenInvalid
	}
	return t, nil
}

func (s *AuthService) ResetPassword(token, password, confirm string) error {
	t, err := s.CheckResetToken(token)
	if err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Users.Update(tx, t.UserID, map[string]any{"password": string(hash)}); err != nil {
			return err
		}
		return s.Tokens.DeleteForUser(tx, t.UserID)
	})
}

// CleanExpiredTokens removes reset tokens older than their validity window.
func (s *AuthService) CleanExpiredTokens() (int64, error) {
	n, err := s.Tokens.DeleteOlderThan(s.Now().Add(-entity.ResetTokenTTL))
	if err != nil {
		return 0, err
	}
	s.Log.Info("expired reset tokens removed", zap.Int64("count", n))
	return n, nil
}

// RunTokenCleaner calls CleanExpiredTokens every interval until ctx ends.
func (s *AuthService) RunTokenCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CleanExpiredTokens(); err != nil {
				s.Log.Error("clean reset tokens", zap.Error(err))
			}
		}
	}
}
