// Package auth verifies session tokens issued by the authentication provider.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid session token")

// leeway absorbs small clock differences between us and the provider
const leeway = 5 * time.Second

// SessionClaims holds the claims of a provider session token
type SessionClaims struct {
	AuthorizedParty string `json:"azp,omitempty"`
	SessionID       string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier resolves a session token to the user it was issued for
type TokenVerifier interface {
	Verify(token string) (*SessionClaims, error)
}

type clerkVerifier struct {
	publicKey         *rsa.PublicKey
	authorizedParties []string
	logger            logger.Logger
}

// NewClerkVerifier parses the PEM public key from settings
func NewClerkVerifier(settings *config.AuthSettings, logger logger.Logger) (TokenVerifier, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(normalizePEM(settings.JWTPublicKey)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT public key: %w", err)
	}

	return &clerkVerifier{
		publicKey:         key,
		authorizedParties: settings.AuthorizedParties,
		logger:            logger,
	}, nil
}

// Verify checks signature, expiry and the authorized party. The subject is the user id.
func (v *clerkVerifier) Verify(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.publicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	if len(v.authorizedParties) > 0 && claims.AuthorizedParty != "" &&
		!slices.Contains(v.authorizedParties, claims.AuthorizedParty) {
		v.logger.Warn("rejected token from unexpected party", "azp", claims.AuthorizedParty)
		return nil, fmt.Errorf("%w: unauthorized party %s", ErrInvalidToken, claims.AuthorizedParty)
	}

	return claims, nil
}

// normalizePEM restores line breaks of keys passed through env vars as "\n" literals
func normalizePEM(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), `\n`, "\n")
}
