package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "zzz789"}

	got, err := resolveID("abc123", "epic", ids)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	got, err = resolveID("zz", "epic", ids)
	require.NoError(t, err)
	assert.Equal(t, "zzz789", got)

	_, err = resolveID("ab", "epic", ids)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveID("nope", "epic", ids)
	assert.ErrorContains(t, err, "not found")

	_, err = resolveID("", "epic", ids)
	assert.ErrorContains(t, err, "required")
}
