package session

import (
	"context"
	"crypto/ecdsa"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/haguru/folio/internal/auth"
	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/pkg/helper"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// CookieName carries the session secret for browsers.
	CookieName = "session_token"
	bearer     = "Bearer "
)

// ErrUnauthorized is returned for a missing, invalid or revoked secret.
var ErrUnauthorized = errors.New("unauthorized")

// Resolver maps secrets onto identities: the bootstrap key, the admin key
// or a session secret issued on login.
type Resolver struct {
	bootstrapSecret string
	adminSecret     string
	publicKey       *ecdsa.PublicKey
	tokens          interfaces.TokenRepository
	logger          interfaces.Logger
	now             func() time.Time
}

// NewResolver creates a resolver. An empty admin secret disables the admin key.
func NewResolver(bootstrapSecret, adminSecret string, publicKey *ecdsa.PublicKey,
	tokens interfaces.TokenRepository, logger interfaces.Logger,
) (*Resolver, error) {
	if bootstrapSecret == "" {
		return nil, fmt.Errorf("bootstrap secret cannot be empty")
	}
	if adminSecret == bootstrapSecret {
		return nil, fmt.Errorf("admin secret must differ from the bootstrap secret")
	}
	if publicKey == nil || tokens == nil || logger == nil {
		return nil, fmt.Errorf("public key, token repository and logger are required")
	}

	return &Resolver{
		bootstrapSecret: bootstrapSecret,
		adminSecret:     adminSecret,
		publicKey:       publicKey,
		tokens:          tokens,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}, nil
}

// Resolve returns the identity secret belongs to.
func (r *Resolver) Resolve(ctx context.Context, secret string) (models.Identity, error) {
	funcName := helper.GetFuncName()

	switch {
	case secret == "":
		return models.Identity{}, fmt.Errorf("missing secret: %w", ErrUnauthorized)
	case equal(secret, r.bootstrapSecret):
		return models.Identity{Role: models.RoleBootstrap}, nil
	case r.adminSecret != "" && equal(secret, r.adminSecret):
		return models.Identity{Role: models.RoleAdmin}, nil
	}

	claims, err := auth.VerifyToken(secret, r.publicKey)
	if err != nil {
		r.logger.Debug("Rejected secret", "func", funcName, "error", err)
		return models.Identity{}, fmt.Errorf("invalid secret: %w", ErrUnauthorized)
	}

	accountID, err := primitive.ObjectIDFromHex(claims.AccountID)
	if err != nil {
		return models.Identity{}, fmt.Errorf("invalid account in secret: %w", ErrUnauthorized)
	}

	token, err := r.tokens.GetToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			r.logger.Debug("Revoked secret", "func", funcName, "account", claims.AccountID)
			return models.Identity{}, fmt.Errorf("revoked secret: %w", ErrUnauthorized)
		}
		return models.Identity{}, fmt.Errorf("failed to look up session: %w", err)
	}
	if token.AccountID != accountID || !token.Expires.After(r.now()) {
		return models.Identity{}, fmt.Errorf("expired secret: %w", ErrUnauthorized)
	}

	identity := models.Identity{
		Role:      token.Role,
		AccountID: accountID,
		TokenID:   token.ID,
	}
	if claims.UserID != "" {
		if userID, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			identity.UserID = userID
		}
	}
	return identity, nil
}

// SecretFromRequest returns the bearer secret of req, falling back to the
// session cookie.
func SecretFromRequest(req *http.Request) string {
	if header := req.Header.Get("Authorization"); header != "" {
		if len(header) > len(bearer) && strings.EqualFold(header[:len(bearer)], bearer) {
			return strings.TrimSpace(header[len(bearer):])
		}
		return ""
	}
	if cookie, err := req.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
