package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pohioki/foodgram-project-react/internal/testhelpers"
	"github.com/Pohioki/foodgram-project-react/internal/types"
)

func registerRequest(email, username string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Email:     email,
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	}
}

func TestRegister(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret")

	user, token, err := svc.Register(registerRequest("chef@example.com", "chef"))
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "chef", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "chef", claims.Username)
}

func TestRegisterRejectsBadUsernames(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret")

	_, _, err := svc.Register(registerRequest("me@example.com", "me"))
	assert.ErrorIs(t, err, ErrReservedUsername)

	_, _, err = svc.Register(registerRequest("bad@example.com", "no spaces!"))
	assert.ErrorIs(t, err, ErrInvalidUsername)

	// Dots, @, + and - are all allowed.
	_, _, err = svc.Register(registerRequest("ok@example.com", "a.b@c+d-e_f"))
	assert.NoError(t, err)
}

func TestRegisterDuplicates(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret")

	_, _, err := svc.Register(registerRequest("chef@example.com", "chef"))
	require.NoError(t, err)

	_, _, err = svc.Register(registerRequest("chef@example.com", "other"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Register(registerRequest("other@example.com", "chef"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret")

	_, _, err := svc.Register(registerRequest("chef@example.com", "chef"))
	require.NoError(t, err)

	token, err := svc.Login("chef@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("chef@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "other-secret")

	_, token, err := svc.Register(registerRequest("chef@example.com", "chef"))
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
