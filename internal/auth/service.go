package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	tokenTTL   = 24 * time.Hour
	bcryptCost = 12
)

// Service issues and validates HS256 bearer tokens. When a passphrase hash
// is configured, Login trades the shared passphrase for a token.
type Service struct {
	jwtSecret      []byte
	passphraseHash []byte
	now            func() time.Time
}

func NewService(jwtSecret, passphraseHash string) *Service {
	return &Service{
		jwtSecret:      []byte(jwtSecret),
		passphraseHash: []byte(passphraseHash),
		now:            time.Now,
	}
}

// HashPassphrase returns the bcrypt hash to configure as AUTH_PASSPHRASE_HASH.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash passphrase: %w", err)
	}
	return string(hash), nil
}

// Login checks the shared passphrase and issues a token for subject.
func (s *Service) Login(subject, passphrase string) (string, error) {
	if len(s.passphraseHash) == 0 || subject == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passphraseHash, []byte(passphrase)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(subject)
}

func (s *Service) IssueToken(subject string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken returns the token subject.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return subject, nil
}
