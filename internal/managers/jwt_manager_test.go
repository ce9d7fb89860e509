package managers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"red-social-api/internal/schemas"
)

func testUser() *schemas.User {
	return &schemas.User{
		ID:      uuid.New(),
		Name:    "Test",
		Surname: "User",
		Nick:    "testnick",
		Email:   "test@example.com",
		Role:    "role_user",
		Image:   "avatar.png",
	}
}

func TestGenerateAndDecode(t *testing.T) {
	jwtMgr := NewJWTManager("test-secret", 720*time.Hour)
	user := testUser()

	claims := jwtMgr.GenerateClaims(user)
	token, err := jwtMgr.GenerateJWT(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := jwtMgr.DecodeJWT(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), decoded["id"])
	assert.Equal(t, user.Name, decoded["name"])
	assert.Equal(t, user.Surname, decoded["surname"])
	assert.Equal(t, user.Nick, decoded["nick"])
	assert.Equal(t, user.Email, decoded["email"])
	assert.Equal(t, user.Role, decoded["role"])
	assert.Equal(t, user.Image, decoded["image"])
}

func TestClaimsCarryConfiguredLifetime(t *testing.T) {
	jwtMgr := NewJWTManager("test-secret", 720*time.Hour)

	claims := jwtMgr.GenerateClaims(testUser())

	iat := claims["iat"].(int64)
	exp := claims["exp"].(int64)
	assert.Equal(t, int64((720 * time.Hour).Seconds()), exp-iat)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	jwtMgr := NewJWTManager("test-secret", 720*time.Hour)
	otherMgr := NewJWTManager("another-secret", 720*time.Hour)

	token, err := jwtMgr.GenerateJWT(jwtMgr.GenerateClaims(testUser()))
	require.NoError(t, err)

	_, err = otherMgr.DecodeJWT(token)
	assert.Error(t, err)
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	jwtMgr := NewJWTManager("test-secret", 720*time.Hour)

	token, err := jwtMgr.GenerateJWT(jwtMgr.GenerateClaims(testUser()))
	require.NoError(t, err)

	_, err = jwtMgr.DecodeJWT(token + "x")
	assert.Error(t, err)
}

// Decoding must not enforce expiry itself; the guard compares the exp
// claim against the clock and maps the outcome to its own status code.
func TestDecodeReturnsExpiredClaims(t *testing.T) {
	jwtMgr := NewJWTManager("test-secret", 720*time.Hour)
	now := time.Now()

	token, err := jwtMgr.GenerateJWT(jwt.MapClaims{
		"id":  uuid.New().String(),
		"iat": now.Add(-31 * 24 * time.Hour).Unix(),
		"exp": now.Add(-24 * time.Hour).Unix(),
	})
	require.NoError(t, err)

	claims, err := jwtMgr.DecodeJWT(token)
	require.NoError(t, err)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.Unix() <= now.Unix())
}
