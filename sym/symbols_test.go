package sym

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownGlyphs(t *testing.T) {
	assert.Equal(t, "plan", Lookup(Plan))
	assert.Equal(t, "db", Lookup(DB))
	assert.Equal(t, "limit", Lookup(Limit))
}

func TestLookupUnknownGlyph(t *testing.T) {
	assert.Equal(t, "", Lookup("??"))
}
