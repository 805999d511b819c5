package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"stripledger/internal/domain"
	"stripledger/internal/repos"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
	issuer     = "stripledger"
)

type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // ACCESS | REFRESH
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret)}
}

func (s *AuthService) Login(email, password string) (*domain.User, TokenPair, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, TokenPair{}, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, TokenPair{}, ErrBadCreds
	}
	pair, err := s.issuePair(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.Validate(refreshToken)
	if err != nil {
		return "", ErrBadCreds
	}
	if claims.TokenType != "REFRESH" {
		return "", ErrBadCreds
	}
	u, err := s.Users.ByID(claims.UserID)
	if err != nil {
		return "", ErrBadCreds
	}
	return s.sign(u, "ACCESS", accessTTL)
}

func (s *AuthService) CurrentUser(claims *Claims) (*domain.User, error) {
	return s.Users.ByID(claims.UserID)
}

// Validate parses and verifies signature and expiry.
func (s *AuthService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *AuthService) issuePair(u *domain.User) (TokenPair, error) {
	access, err := s.sign(u, "ACCESS", accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(u, "REFRESH", refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) sign(u *domain.User, tokenType string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    u.ID,
		Role:      u.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}
