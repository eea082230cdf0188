package services

import "errors"

var (
	ErrUnknown             = errors.New("[service]: unknown error")
	ErrRecordNotFound      = errors.New("[service]: record not found")
	ErrInvalidInput        = errors.New("[service]: invalid input")
	ErrDuplicateIdentity   = errors.New("[service]: identity already exists")
	ErrInvalidCredentials  = errors.New("[service]: invalid credentials")
	ErrMissingToken        = errors.New("[service]: missing token")
	ErrTokenExpired        = errors.New("[service]: token expired")
	ErrInvalidToken        = errors.New("[service]: invalid token")
	ErrIdentityNotFound    = errors.New("[service]: identity not found")
	ErrForbidden           = errors.New("[service]: forbidden")
	ErrAllocationExhausted = errors.New("[service]: short code allocation exhausted")
)
