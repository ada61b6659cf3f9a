// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nevisa/internal/platform/sec"
)

const issuer = "nevisa.ir"

func signToken(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims sec.AuthClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims() sec.AuthClaims {
	now := time.Now()
	return sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "reader-1",
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Role: string(sec.RoleReader),
	}
}

/*
TestTokenVerifier_VerifyToken covers signature, issuer and expiry checks.
*/
func TestTokenVerifier_VerifyToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier := sec.NewTokenVerifierFromKey(&key.PublicKey, issuer)

	t.Run("valid_token_falls_back_to_subject", func(t *testing.T) {
		claims, err := verifier.VerifyToken(signToken(t, key, jwt.SigningMethodRS256, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "reader-1", claims.UserID)
		assert.Equal(t, string(sec.RoleReader), claims.Role)
	})

	t.Run("foreign_key", func(t *testing.T) {
		_, err := verifier.VerifyToken(signToken(t, other, jwt.SigningMethodRS256, validClaims()))
		assert.Error(t, err)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "example.com"
		_, err := verifier.VerifyToken(signToken(t, key, jwt.SigningMethodRS256, claims))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := verifier.VerifyToken(signToken(t, key, jwt.SigningMethodRS256, claims))
		assert.Error(t, err)
	})

	t.Run("other_algorithm", func(t *testing.T) {
		claims := validClaims()
		_, err := verifier.VerifyToken(signToken(t, key, jwt.SigningMethodRS512, claims))
		assert.Error(t, err)
	})
}

/*
TestUserRole_AtLeast checks the role ladder.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleReader.AtLeast(sec.RoleReader))
	assert.False(t, sec.RoleAuthor.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleReader))
}
