package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"
)

// bcrypt 成本固定為 10
const bcryptCost = 10

// Claims JWT 載荷，只攜帶使用者 ID
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenPair 一組 access / refresh 令牌
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService 簽發與驗證 JWT
// access 與 refresh 各用獨立密鑰，refresh 洩漏不影響 access 驗證
type TokenService struct {
	cfg *config.AuthConfig
}

// NewTokenService 創建令牌服務
func NewTokenService(cfg *config.AuthConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// GenerateTokens 為指定使用者簽發一組令牌
func (s *TokenService) GenerateTokens(userID string) (*TokenPair, error) {
	access, err := s.sign(userID, s.cfg.JWTSecret, s.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(userID, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess 驗證 access token 並返回使用者 ID
func (s *TokenService) VerifyAccess(token string) (string, error) {
	return s.verify(token, s.cfg.JWTSecret)
}

// VerifyRefresh 驗證 refresh token 並返回使用者 ID
func (s *TokenService) VerifyRefresh(token string) (string, error) {
	return s.verify(token, s.cfg.RefreshSecret)
}

func (s *TokenService) sign(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *TokenService) verify(tokenString, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		// 過期與其他無效情況分開回報，前端據此決定是否走 refresh
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired.WithCause(err)
		}
		return "", common.ErrInvalidToken.WithCause(err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}

// HashPassword 以 bcrypt 雜湊密碼
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword 比對明文密碼與雜湊
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
