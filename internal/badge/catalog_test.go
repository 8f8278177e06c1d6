package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_CoversEveryRule(t *testing.T) {
	for _, r := range Rules() {
		_, ok := Lookup(r.Badge)
		assert.True(t, ok, "rule badge %q missing from catalog", r.Badge)
	}
}

func TestCatalog_UniqueIDsAndMetadata(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range All() {
		assert.False(t, seen[b.ID], "duplicate badge %q", b.ID)
		seen[b.ID] = true
		assert.NotEmpty(t, b.Name, b.ID)
		assert.NotEmpty(t, b.Description, b.ID)
		assert.NotEmpty(t, b.Icon, b.ID)
		assert.NotEmpty(t, b.Rarity, b.ID)
	}
	assert.Len(t, seen, 17)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("not_a_badge")
	assert.False(t, ok)
}
