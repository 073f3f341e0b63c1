package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/bakerysim-go/pkg/utils"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, utils.Clamp(-5, 0, 100))
	assert.Equal(t, 100, utils.Clamp(140, 0, 100))
	assert.Equal(t, 42, utils.Clamp(42, 0, 100))
	assert.Equal(t, 3, utils.Min(3, 7))
	assert.Equal(t, 7, utils.Max(3, 7))
}

func TestGenerateSessionID(t *testing.T) {
	id := utils.GenerateSessionID("Bakery Run!")
	assert.True(t, strings.HasPrefix(id, "bakery-run-"), id)
	assert.Len(t, id, len("bakery-run-")+8)

	// names without ASCII letters fall back to a generic prefix
	assert.True(t, strings.HasPrefix(utils.GenerateSessionID("小美"), "session-"))
	assert.NotEqual(t, utils.GenerateSessionID("Mei"), utils.GenerateSessionID("Mei"))
}
