//go:build unit
// +build unit

package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierTest struct {
	key      *rsa.PrivateKey
	verifier TokenVerifier
}

func newVerifierTest(t *testing.T, parties ...string) *verifierTest {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	verifier, err := NewClerkVerifier(&config.AuthSettings{
		JWTPublicKey:      string(publicPEM),
		AuthorizedParties: parties,
	}, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	return &verifierTest{key: key, verifier: verifier}
}

func (vt *verifierTest) sign(t *testing.T, claims SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(vt.key)
	require.NoError(t, err)
	return token
}

func validClaims() SessionClaims {
	now := time.Now()
	return SessionClaims{
		AuthorizedParty: "https://genno.io",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}
}

func TestClerkVerifier_Verify(t *testing.T) {
	vt := newVerifierTest(t, "https://genno.io")

	claims, err := vt.verifier.Verify(vt.sign(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.Subject)
}

func TestClerkVerifier_Verify_Expired(t *testing.T) {
	vt := newVerifierTest(t)
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err := vt.verifier.Verify(vt.sign(t, claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClerkVerifier_Verify_MissingSubject(t *testing.T) {
	vt := newVerifierTest(t)
	claims := validClaims()
	claims.Subject = ""

	_, err := vt.verifier.Verify(vt.sign(t, claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClerkVerifier_Verify_UnauthorizedParty(t *testing.T) {
	vt := newVerifierTest(t, "https://genno.io")
	claims := validClaims()
	claims.AuthorizedParty = "https://evil.example"

	_, err := vt.verifier.Verify(vt.sign(t, claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClerkVerifier_Verify_WrongKey(t *testing.T) {
	vt := newVerifierTest(t)
	other := newVerifierTest(t)

	_, err := vt.verifier.Verify(other.sign(t, validClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClerkVerifier_Verify_RejectsHS256(t *testing.T) {
	vt := newVerifierTest(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = vt.verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewClerkVerifier_EscapedNewlines(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	escaped := strings.ReplaceAll(string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), "\n", `\n`)

	_, err = NewClerkVerifier(&config.AuthSettings{JWTPublicKey: escaped}, testutil.SetupTestLogger(t))
	assert.NoError(t, err)
}

func TestNewClerkVerifier_InvalidKey(t *testing.T) {
	_, err := NewClerkVerifier(&config.AuthSettings{JWTPublicKey: "garbage"}, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
