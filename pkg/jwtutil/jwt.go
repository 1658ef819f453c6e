package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrMissingSigningKey is returned when the utility is built without a key
	ErrMissingSigningKey = errors.New("jwt signing key is not configured")
	// ErrInvalidToken covers bad signatures, malformed and expired tokens
	ErrInvalidToken = errors.New("invalid token")
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// ClinicClaims represents the JWT claims issued to a clinic user
type ClinicClaims struct {
	UserID   uint `json:"userId"`
	ClinicID uint `json:"clinicId"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	signingKey []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *JWTConfig) (*JWTUtil, error) {
	if config == nil || config.SigningKey == "" {
		return nil, ErrMissingSigningKey
	}
	hours := config.ExpirationHours
	if hours <= 0 {
		hours = 7 * 24
	}
	return &JWTUtil{
		signingKey: []byte(config.SigningKey),
		expiration: time.Duration(hours) * time.Hour,
		now:        time.Now,
	}, nil
}

// GenerateToken creates a signed token carrying the user and clinic identity
func (j *JWTUtil) GenerateToken(userID, clinicID uint) (string, error) {
	now := j.now()
	claims := ClinicClaims{
		UserID:   userID,
		ClinicID: clinicID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.signingKey)
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*ClinicClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&ClinicClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return j.signingKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*ClinicClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ClinicID == 0 || claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}
	return claims, nil
}
