package ytpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	assert.True(t, ValidateID("PL1234567890abcdef"))
	assert.True(t, ValidateID("https://www.youtube.com/watch?v=abc&list=PL1234567890abcdef"))
	assert.True(t, ValidateID("UCabcdefghijklmnopqrstuv"))
	assert.False(t, ValidateID(""))
	assert.False(t, ValidateID("not a playlist"))
	assert.False(t, ValidateID("https://example.com/playlist?list=PL1234567890abcdef"))
}
