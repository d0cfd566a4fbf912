package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secret", "recepcion-1", RoleReceptionist, "gestion-hotel", 60)
	require.NoError(t, err)

	sub, role, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "recepcion-1", sub)
	assert.Equal(t, RoleReceptionist, role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secret", "admin", RoleAdmin, "gestion-hotel", 60)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("secret", "admin", RoleAdmin, "gestion-hotel", -1)
	require.NoError(t, err)

	_, _, err = Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_Rejects(t *testing.T) {
	_, err := Generate("", "x", RoleAdmin, "i", 1)
	assert.Error(t, err)
	_, err = Generate("secret", "x", "bodeguero", "i", 1)
	assert.Error(t, err)
}
