package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/folio/internal/models"
)

func testTokens() TokenService {
	return TokenService{Secret: []byte("0123456789abcdef"), Issuer: "folio", Duration: time.Hour}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokens()
	u := &models.User{ID: "user-1", Email: "admin@example.com"}

	raw, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestParse_Rejects(t *testing.T) {
	ts := testTokens()
	u := &models.User{ID: "user-1"}

	other := ts
	other.Secret = []byte("another-secret-value")
	raw, _, err := other.Sign(u)
	require.NoError(t, err)
	_, err = ts.Parse(raw)
	assert.Error(t, err, "wrong secret")

	expired := ts
	expired.Duration = -time.Minute
	raw, _, err = expired.Sign(u)
	require.NoError(t, err)
	_, err = ts.Parse(raw)
	assert.Error(t, err, "expired")

	wrongIssuer := ts
	wrongIssuer.Issuer = "someone-else"
	raw, _, err = wrongIssuer.Sign(u)
	require.NoError(t, err)
	_, err = ts.Parse(raw)
	assert.Error(t, err, "issuer")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1", Issuer: "folio"})
	raw, err = none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ts.Parse(raw)
	assert.Error(t, err, "alg none")

	_, err = ts.Parse("garbage")
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-pass"))
}

func TestUserContext(t *testing.T) {
	_, ok := UserFrom(context.Background())
	assert.False(t, ok)

	u := &models.User{ID: "x"}
	got, ok := UserFrom(WithUser(context.Background(), u))
	require.True(t, ok)
	assert.Same(t, u, got)
}
