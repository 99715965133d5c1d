package auth

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ISSUER  = "folio"
	SUBJECT = "SESSION"
	// DEFAULT_TTL applies when a token request carries no lifetime.
	DEFAULT_TTL = 24 * time.Hour
)

type CustomClaims struct {
	AccountID string `json:"aid"`
	UserID    string `json:"uid,omitempty"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenRequest describes the session a token is issued for.
type TokenRequest struct {
	AccountID string
	UserID    string
	Role      string
	TTL       time.Duration
}

// CreateToken signs an ES256 session token. The returned claims carry the
// token id and expiry the caller stores for revocation.
func CreateToken(req TokenRequest, privateKey *ecdsa.PrivateKey) (string, *CustomClaims, error) {
	if privateKey == nil {
		return "", nil, fmt.Errorf("private key cannot be nil")
	}
	if req.AccountID == "" {
		return "", nil, fmt.Errorf("account id cannot be empty")
	}
	ttl := req.TTL
	if ttl <= 0 {
		ttl = DEFAULT_TTL
	}

	now := time.Now()
	claims := &CustomClaims{
		AccountID: req.AccountID,
		UserID:    req.UserID,
		Role:      req.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ISSUER,
			Subject:   SUBJECT,
			Audience:  []string{"api." + ISSUER},
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signToken, err := token.SignedString(privateKey)
	if err != nil {
		return "", nil, err
	}

	return signToken, claims, nil
}

func VerifyToken(tokenString string, publicKey *ecdsa.PublicKey) (*CustomClaims, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("public key cannot be nil")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	}, jwt.WithValidMethods([]string{"ES256"}), jwt.WithIssuer(ISSUER))
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token or claims")
}
