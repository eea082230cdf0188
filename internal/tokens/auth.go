package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// UserClaims представляет данные JWT токена пользователя.
// Роль кладется в токен только для информации клиента, сервер ее не использует.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Role   string `json:"role"`
}

// GenerateUserJWT создает JWT токен для пользователя.
//
// Параметры:
//   - userID: идентификатор пользователя
//   - role: роль пользователя на момент выдачи
//   - expire: срок действия токена
//   - key: ключ для подписи токена
//
// Возвращает:
//   - string: сгенерированный JWT токен
//   - error: ошибка генерации токена
func GenerateUserJWT(userID, role string, expire time.Duration, key []byte) (string, error) {
	now := time.Now()
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
		UserID: userID,
		Role:   role,
	}
	token, err := generateJWT(claims, key)
	if err != nil {
		return "", fmt.Errorf("generating user jwt token: %w", err)
	}
	return token, nil
}

// ValidateUserJWT проверяет JWT токен пользователя.
//
// Возвращает ErrTokenExpired для просроченного токена и ErrInvalidToken для любой другой проблемы
// (подпись, формат, алгоритм, отсутствующие claims).
func ValidateUserJWT(tokenString string, key []byte) (*UserClaims, error) {
	token, err := validateJWT(tokenString, new(UserClaims), key)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || claims.UserID == "" {
		return nil, errors.Wrap(ErrInvalidToken, "invalid claims")
	}
	if claims.Subject != "" && claims.Subject != claims.UserID {
		return nil, errors.Wrap(ErrInvalidToken, "subject mismatch")
	}
	return claims, nil
}

func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %w", err)
	}

	return tokenString, nil
}

func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return token, nil
}
