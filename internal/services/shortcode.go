package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/fsdevblog/linkly/internal/models"
)

const shortCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// CodeGenerator источник коротких кодов.
type CodeGenerator func() (string, error)

// GenerateShortCode возвращает случайный код длины models.ShortCodeLength из base62 алфавита.
func GenerateShortCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(shortCodeAlphabet)))
	code := make([]byte, models.ShortCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("generate short code: %w", err)
		}
		code[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// IsValidShortCode проверяет формат кода без обращения к хранилищу.
func IsValidShortCode(code string) bool {
	if len(code) != models.ShortCodeLength {
		return false
	}
	for i := range len(code) {
		c := code[i]
		isDigit := c >= '0' && c <= '9'
		isUpper := c >= 'A' && c <= 'Z'
		isLower := c >= 'a' && c <= 'z'
		if !isDigit && !isUpper && !isLower {
			return false
		}
	}
	return true
}
