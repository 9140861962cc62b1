package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, exp, err := Generate("secreto", "ani", "admin", "koperasi-api", 480)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), exp, time.Minute)

	username, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "ani", username)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, _, err := Generate("secreto", "ani", "admin", "", 10)
	require.NoError(t, err)

	_, _, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, _, err := Generate("secreto", "ani", "admin", "", -1)
	require.NoError(t, err)

	_, _, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, _, err := Generate("", "ani", "admin", "", 10)
	assert.Error(t, err)
}
