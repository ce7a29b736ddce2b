package utils

import (
	"testing"

	"lacave_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Vieille Prune 70cl":   "vieille-prune-70cl",
		"Château Margaux 2015": "chateau-margaux-2015",
		"Bières":               "bieres",
		"Côtes-du-Rhône":       "cotes-du-rhone",
		"  Gin & Tonic  ":      "gin-tonic",
		"Moët & Chandon":       "moet-chandon",
		"Crème de cassis":      "creme-de-cassis",
		"":                     "",
		"---":                  "",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "entrée %q", in)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("vin-rouge-2015!")
	require.NoError(t, err)
	assert.NotEqual(t, "vin-rouge-2015!", hash)

	assert.True(t, VerifyPassword("vin-rouge-2015!", hash))
	assert.False(t, VerifyPassword("vin-blanc-2015!", hash))
	assert.False(t, VerifyPassword("vin-rouge-2015!", "pas-un-hash"))
}

func TestGenerateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	user := models.User{ID: "u-123", Email: "jean@example.com", Role: "customer"}
	signed, err := GenerateJWT(user)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "u-123", claims["user_id"])
	assert.Equal(t, "jean@example.com", claims["email"])
	assert.Equal(t, "customer", claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestGenerateJWT_MauvaisSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	signed, err := GenerateJWT(models.User{ID: "u-123"})
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("autre-secret"), nil
	})
	assert.Error(t, err)
}
