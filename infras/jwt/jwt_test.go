package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aula/config"
	"aula/infras/jwt"
)

func testService() jwt.JWT {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.App.Name = "aula"

	return jwt.New(cfg)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testService()

	token, err := svc.GenerateToken("u-1", "alice@campus.edu", "organiser")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice@campus.edu", claims.Email)
	assert.Equal(t, "organiser", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testService().GenerateToken("u-1", "alice@campus.edu", "admin")
	require.NoError(t, err)

	other := &config.Config{}
	other.JWT.AccessSecret = "different-secret"
	other.JWT.AccessExpireMin = 15

	_, err = jwt.New(other).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing scheme", header: "abc.def.ghi", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
