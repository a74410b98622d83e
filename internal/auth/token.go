package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims - содержимое bearer-токена.
// ID (jti) - id записи access_tokens, Nonce - секрет, хеш которого хранится в записи.
type Claims struct {
	UserID uint   `json:"uid"`
	Nonce  string `json:"nonce"`
	jwt.RegisteredClaims
}

// TokenID возвращает id записи access_tokens из jti
func (c *Claims) TokenID() (uint, error) {
	id, err := strconv.ParseUint(c.ID, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// TokenManager подписывает и проверяет токены (HS256)
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager создает менеджер. ttl == 0 - токены без срока действия.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// ExpiresAt возвращает срок действия нового токена или nil
func (m *TokenManager) ExpiresAt(now time.Time) *time.Time {
	if m.ttl <= 0 {
		return nil
	}
	exp := now.Add(m.ttl)
	return &exp
}

// NewNonce генерирует случайный секрет токена и его хеш для хранения
func (m *TokenManager) NewNonce() (nonce string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token nonce: %w", err)
	}
	nonce = hex.EncodeToString(buf)
	return nonce, HashNonce(nonce), nil
}

// Sign выпускает подписанный токен для записи tokenID
func (m *TokenManager) Sign(userID, tokenID uint, nonce string, issuedAt time.Time, expiresAt *time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Nonce:  nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       strconv.FormatUint(uint64(tokenID), 10),
			Subject:  strconv.FormatUint(uint64(userID), 10),
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse проверяет подпись и срок действия токена
func (m *TokenManager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Nonce == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashNonce - sha256 в hex, так секрет хранится в access_tokens.token_hash
func HashNonce(nonce string) string {
	sum := sha256.Sum256([]byte(nonce))
	return hex.EncodeToString(sum[:])
}

// NonceMatches сравнивает секрет с сохраненным хешем за постоянное время
func NonceMatches(nonce, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashNonce(nonce)), []byte(hash)) == 1
}
