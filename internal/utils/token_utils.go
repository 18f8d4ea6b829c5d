package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingCompany is returned for tokens that are not bound to a company.
var ErrMissingCompany = errors.New("token is not bound to a company")

// AuthClaims are the JWT claims of a session. The company is part of the session
// so that no request can name the books it operates on.
type AuthClaims struct {
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new HS256 token for a user acting on one company's books.
func GenerateJWT(userID, companyID, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string, validates its signature, standard claims and issuer,
// and requires both a subject and a company.
func ParseAndValidateJWT(tokenString, secretKey, issuer string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidSubject
	}
	if claims.CompanyID == "" {
		return nil, ErrMissingCompany
	}
	return claims, nil
}
