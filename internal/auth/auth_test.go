package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Global variable for the JWT private key for testing purposes
// This will be initialized in TestMain
var testJwtPrivateKey *ecdsa.PrivateKey

// TestMain runs before any tests in the package.
// It's used for setup and teardown.
func TestMain(m *testing.M) {
	// Generate a valid ECDSA private key for ES256 signing
	validKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate ECDSA private key for tests: %v", err)
	}
	testJwtPrivateKey = validKey

	// Save the valid private key to a PEM file
	validKeyFile := "test_valid_private.pem"
	validKeyOut, err := os.Create(validKeyFile)
	if err != nil {
		log.Fatalf("Failed to create valid private key file: %v", err)
	}
	defer func() {
		if err := validKeyOut.Close(); err != nil {
			log.Fatalf("Failed to close valid private key file: %v", err)
		}
	}()
	if err := encodeECDSAPrivateKeyToPEM(validKeyOut, validKey); err != nil {
		log.Fatalf("Failed to write valid private key to PEM: %v", err)
	}

	// Create an invalid PEM file (not a private key)
	invalidKeyFile := "test_invalid_private.pem"
	invalidKeyOut, err := os.Create(invalidKeyFile)
	if err != nil {
		log.Fatalf("Failed to create invalid private key file: %v", err)
	}
	defer func() {
		if err := invalidKeyOut.Close(); err != nil {
			log.Fatalf("Failed to close invalid private key file: %v", err)
		}
	}()
	if _, err := invalidKeyOut.WriteString("-----BEGIN INVALID KEY-----\nnot-a-real-key\n-----END INVALID KEY-----\n"); err != nil {
		log.Fatalf("Failed to write invalid key to PEM: %v", err)
	}

	// Run all tests in the package
	code := m.Run()

	// Teardown: remove generated files
	if err := os.Remove(validKeyFile); err != nil {
		log.Printf("Warning: failed to remove %s: %v", validKeyFile, err)
	}
	if err := os.Remove(invalidKeyFile); err != nil {
		log.Printf("Warning: failed to remove %s: %v", invalidKeyFile, err)
	}

	os.Exit(code)
}

// encodeECDSAPrivateKeyToPEM writes an ECDSA private key to the given writer in PEM format.
func encodeECDSAPrivateKeyToPEM(out *os.File, key *ecdsa.PrivateKey) error {
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal ECDSA private key: %w", err)
	}
	block := &pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: der,
	}
	if err := pem.Encode(out, block); err != nil {
		return fmt.Errorf("failed to encode PEM: %w", err)
	}
	return nil
}

func TestCreateToken(t *testing.T) {
	type args struct {
		req        TokenRequest
		privateKey *ecdsa.PrivateKey
	}
	tests := []struct {
		name    string
		args    args
		wantTTL time.Duration
		wantErr bool
	}{
		{
			name: "Successful token creation for account with user",
			args: args{
				req:        TokenRequest{AccountID: "acc123", UserID: "usr123", Role: "membershiprole_loggedin", TTL: time.Hour},
				privateKey: testJwtPrivateKey,
			},
			wantTTL: time.Hour,
		},
		{
			name: "Default lifetime when none is given",
			args: args{
				req:        TokenRequest{AccountID: "acc123", Role: "membershiprole_loggedin"},
				privateKey: testJwtPrivateKey,
			},
			wantTTL: DEFAULT_TTL,
		},
		{
			name: "Error with empty account id",
			args: args{
				req:        TokenRequest{Role: "membershiprole_loggedin"},
				privateKey: testJwtPrivateKey,
			},
			wantErr: true,
		},
		{
			name: "Error with nil private key",
			args: args{
				req: TokenRequest{AccountID: "acc123"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTokenString, gotClaims, err := CreateToken(tt.args.req, tt.args.privateKey)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, gotTokenString)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, gotTokenString)

			publicKey := &tt.args.privateKey.PublicKey
			parsedToken, parseErr := jwt.ParseWithClaims(gotTokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
				return publicKey, nil
			}, jwt.WithValidMethods([]string{"ES256"}))
			require.NoError(t, parseErr)
			require.True(t, parsedToken.Valid)

			claims, ok := parsedToken.Claims.(*CustomClaims)
			require.True(t, ok)

			assert.Equal(t, tt.args.req.AccountID, claims.AccountID)
			assert.Equal(t, tt.args.req.UserID, claims.UserID)
			assert.Equal(t, tt.args.req.Role, claims.Role)
			assert.Equal(t, gotClaims.ID, claims.ID)
			assert.Equal(t, ISSUER, claims.Issuer)
			assert.Equal(t, SUBJECT, claims.Subject)
			assert.Equal(t, jwt.ClaimStrings{"api." + ISSUER}, claims.Audience)

			now := time.Now()
			assert.WithinDuration(t, now.Add(tt.wantTTL), claims.ExpiresAt.Time, 5*time.Second)
			assert.WithinDuration(t, now, claims.IssuedAt.Time, 5*time.Second)

			_, err = uuid.Parse(claims.ID)
			assert.NoError(t, err, "ID (JTI) claim is not a valid UUID")
		})
	}
}

func TestVerifyToken(t *testing.T) {
	valid, _, err := CreateToken(TokenRequest{AccountID: "acc123", Role: "membershiprole_loggedin"}, testJwtPrivateKey)
	require.NoError(t, err)

	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	otherSigned, _, err := CreateToken(TokenRequest{AccountID: "acc123"}, otherKey)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodES256, CustomClaims{
		AccountID: "acc123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    ISSUER,
		},
	}).SignedString(testJwtPrivateKey)
	require.NoError(t, err)

	foreignIssuer, err := jwt.NewWithClaims(jwt.SigningMethodES256, CustomClaims{
		AccountID: "acc123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			Issuer:    "someone-else",
		},
	}).SignedString(testJwtPrivateKey)
	require.NoError(t, err)

	tests := []struct {
		name        string
		tokenString string
		publicKey   *ecdsa.PublicKey
		wantErr     bool
	}{
		{
			name:        "Successful token verification with valid token",
			tokenString: valid,
			publicKey:   &testJwtPrivateKey.PublicKey,
		},
		{
			name:        "Error with invalid token format",
			tokenString: "invalid-token-format",
			publicKey:   &testJwtPrivateKey.PublicKey,
			wantErr:     true,
		},
		{
			name:        "Error with tampered token",
			tokenString: valid[:len(valid)-4] + "AAAA",
			publicKey:   &testJwtPrivateKey.PublicKey,
			wantErr:     true,
		},
		{
			name:        "Error with expired token",
			tokenString: expired,
			publicKey:   &testJwtPrivateKey.PublicKey,
			wantErr:     true,
		},
		{
			name:        "Error with token signed by different key",
			tokenString: otherSigned,
			publicKey:   &testJwtPrivateKey.PublicKey,
			wantErr:     true,
		},
		{
			name:        "Error with foreign issuer",
			tokenString: foreignIssuer,
			publicKey:   &testJwtPrivateKey.PublicKey,
			wantErr:     true,
		},
		{
			name:        "Error with nil public key",
			tokenString: valid,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims, err := VerifyToken(tt.tokenString, tt.publicKey)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, gotClaims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "acc123", gotClaims.AccountID)
			assert.Equal(t, "membershiprole_loggedin", gotClaims.Role)
			assert.Equal(t, ISSUER, gotClaims.Issuer)
		})
	}
}
