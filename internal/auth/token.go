package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken - общая ошибка валидации токена: подпись, формат или срок действия.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL - срок жизни токена по умолчанию.
const DefaultTokenTTL = 24 * time.Hour

// Claims - полезная нагрузка токена.
type Claims struct {
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService выпускает и проверяет подписанные HS256 токены.
// Секрет передаётся при создании, глобального состояния нет.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService создаёт сервис токенов. ttl <= 0 заменяется на DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL возвращает срок жизни выпускаемых токенов.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue выпускает токен со сроком жизни по умолчанию.
func (s *TokenService) Issue(userID int64) (string, error) {
	return s.IssueWithTTL(userID, s.ttl)
}

// IssueWithTTL выпускает токен с явным сроком жизни. ttl <= 0 даёт токен, уже недействительный.
func (s *TokenService) IssueWithTTL(userID int64, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate проверяет токен. Любая проблема возвращается как ErrInvalidToken, паники нет.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	rc := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, rc, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(rc.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	// ttl=0: exp совпадает с iat с точностью до секунды, такой токен не должен проходить
	if !s.now().Before(rc.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}

	claims := &Claims{UserID: userID, ExpiresAt: rc.ExpiresAt.Time}
	if rc.IssuedAt != nil {
		claims.IssuedAt = rc.IssuedAt.Time
	}
	return claims, nil
}
