package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, secret string, ttl time.Duration) *Codec {
	t.Helper()
	c, err := NewCodec(secret, "HS256", ttl)
	require.NoError(t, err)
	return c
}

func TestNewCodec_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewCodec("", "HS256", time.Minute)
	assert.Error(t, err, "empty secret must be rejected")

	_, err = NewCodec("secret", "XS999", time.Minute)
	assert.Error(t, err, "unknown algorithm must be rejected")

	_, err = NewCodec("secret", "RS256", time.Minute)
	assert.Error(t, err, "non-HMAC algorithm must be rejected")

	_, err = NewCodec("secret", "HS512", time.Minute)
	assert.NoError(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "super-secret", 15*time.Minute)

	tok, err := c.Issue("alice@example.com")
	require.NoError(t, err)

	claims, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)

	wantExpiry := time.Now().Add(15 * time.Minute)
	assert.WithinDuration(t, wantExpiry, claims.ExpiresAt.Time, time.Second)
}

func TestCodec_TTLOverride(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "super-secret", 15*time.Minute)

	tok, err := c.Issue("alice@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := c.Verify(tok)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestCodec_Expired(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "super-secret", 15*time.Minute)

	tok, err := c.Issue("alice@example.com", -time.Second)
	require.NoError(t, err)

	_, err = c.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_DomainSeparation(t *testing.T) {
	t.Parallel()

	access := newTestCodec(t, "access-secret", 15*time.Minute)
	refresh := newTestCodec(t, "refresh-secret", 420*time.Minute)

	accessTok, err := access.Issue("alice@example.com")
	require.NoError(t, err)
	refreshTok, err := refresh.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = refresh.Verify(accessTok)
	assert.ErrorIs(t, err, ErrTokenSignature)

	_, err = access.Verify(refreshTok)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestCodec_Tampered(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "super-secret", 15*time.Minute)

	tok, err := c.Issue("alice@example.com")
	require.NoError(t, err)

	// Flip one byte of the signature
	b := []byte(tok)
	last := len(b) - 1
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}

	_, err = c.Verify(string(b))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Malformed(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "super-secret", 15*time.Minute)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c", strings.Repeat("x", 500)} {
		_, err := c.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestCodec_EmptySubject(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, "super-secret", 15*time.Minute)

	tok, err := c.Issue("")
	require.NoError(t, err)

	_, err = c.Verify(tok)
	require.ErrorIs(t, err, ErrTokenMalformed)
}
