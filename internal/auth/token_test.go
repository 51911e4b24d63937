package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "test", time.Hour)

	token, err := tm.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestIssueRequiresEmail(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "test", time.Hour)

	_, err := tm.Issue("   ")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "test", -1*time.Second)

	token, err := tm.Issue("a@x.com")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenManager("right-secret", "test", time.Hour).Issue("a@x.com")
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", "test", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "test", time.Hour)

	_, err := tm.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "test", time.Hour)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "missing header", header: "", wantErr: ErrMissingToken},
		{name: "wrong scheme", header: "Basic abc123", wantErr: ErrMissingToken},
		{name: "scheme without token", header: "Bearer ", wantErr: ErrMissingToken},
		{name: "well formed", header: "Bearer abc123", want: "abc123"},
		{name: "case insensitive scheme", header: "bearer abc123", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := http.NewRequest(http.MethodGet, "/users", nil)
			require.NoError(t, err)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, err := tm.FromRequest(r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
