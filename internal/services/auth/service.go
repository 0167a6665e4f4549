package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lead_gen/internal/domain"
	"lead_gen/internal/lib/logger/sl"
	"lead_gen/internal/repository"
)

// BuyerRepository is the slice of buyer storage the auth flow needs.
type BuyerRepository interface {
	CreateBuyer(ctx context.Context, buyer domain.Buyer) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (domain.Buyer, error)
}

type Service struct {
	log      *slog.Logger
	buyers   BuyerRepository
	tokenTTL time.Duration
	secret   string
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBuyerExists        = errors.New("buyer already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

func New(log *slog.Logger, buyers BuyerRepository, tokenTTL time.Duration, secret string) *Service {
	return &Service{
		log:      log,
		buyers:   buyers,
		tokenTTL: tokenTTL,
		secret:   secret,
	}
}

// Register is registration step 1: account with contact details and a
// password. The buyer starts unscored (0 / Cold) until step 2 submits
// preferences.
func (s *Service) Register(ctx context.Context, name, phone, email, password string) (uuid.UUID, string, error) {
	const op = "auth.Service.Register"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.buyers.CreateBuyer(ctx, domain.Buyer{
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: string(hash),
		Score:        0,
		ScoreTier:    domain.TierCold,
	})
	if err != nil {
		if errors.Is(err, repository.ErrBuyerAlreadyExists) {
			log.Warn("buyer already registered")
			return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrBuyerExists)
		}
		log.Error("failed to create buyer", sl.Err(err))
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.issueToken(id)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("buyer registered", slog.String("buyer_id", id.String()))
	return id, token, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.Service.Login"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	buyer, err := s.buyers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrBuyerNotFound) {
			log.Warn("login for unknown email")
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to fetch buyer", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(buyer.PasswordHash), []byte(password)); err != nil {
		log.Warn("wrong password")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.issueToken(buyer.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// VerifyToken validates a session token and returns the buyer id it was
// issued for.
func (s *Service) VerifyToken(tokenString string) (uuid.UUID, error) {
	const op = "auth.Service.VerifyToken"

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return id, nil
}

func (s *Service) issueToken(buyerID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": buyerID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.secret))
}
