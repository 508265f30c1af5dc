package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingSubject     = errors.New("token has no subject")
	ErrUnsupportedSigning = errors.New("unsupported signing algorithm")
)

// GatewayTokenVerifier validates tokens signed by the gateway with a shared secret
type GatewayTokenVerifier struct {
	secretKey []byte
	method    jwt.SigningMethod
	issuer    string
}

// NewGatewayTokenVerifier creates a verifier for HS256, HS384 or HS512 tokens
func NewGatewayTokenVerifier(secret, algorithm, issuer string) (*GatewayTokenVerifier, error) {
	var method jwt.SigningMethod
	switch strings.ToUpper(algorithm) {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, ErrUnsupportedSigning
	}

	return &GatewayTokenVerifier{
		secretKey: []byte(secret),
		method:    method,
		issuer:    issuer,
	}, nil
}

// Subject validates the token and returns its sub claim
func (v *GatewayTokenVerifier) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	}, jwt.WithValidMethods([]string{v.method.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", ErrMissingSubject
	}
	return subject, nil
}

// Issue signs a token for subject, valid for ttl
func (v *GatewayTokenVerifier) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    v.issuer,
		Subject:   subject,
	}

	token := jwt.NewWithClaims(v.method, claims)
	return token.SignedString(v.secretKey)
}
