package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSprintFilter_Scope(t *testing.T) {
	f := SelectSprints("s1", "s2")
	assert.True(t, f.InScope("s1"))
	assert.True(t, f.InScope("s2"))
	assert.False(t, f.InScope("s3"))
	assert.False(t, f.All())

	all := AllSprints()
	assert.True(t, all.InScope("anything"))
	assert.True(t, all.All())

	none := SelectSprints()
	assert.False(t, none.InScope("s1"))
}

func TestSprintFilter_EncodeDecode(t *testing.T) {
	cases := []struct {
		filter  SprintFilter
		encoded string
	}{
		{AllSprints(), "all"},
		{SelectSprints(), ""},
		{SelectSprints("s2", "s1"), "s1,s2"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.encoded, tc.filter.Encode())
		decoded := DecodeFilter(tc.encoded)
		assert.Equal(t, tc.filter.All(), decoded.All())
		assert.Equal(t, tc.filter.IDs(), decoded.IDs())
	}
}

func TestSprintFilter_IgnoresEmptyIDs(t *testing.T) {
	f := SelectSprints("", "s1", "")
	assert.Equal(t, []string{"s1"}, f.IDs())
}
