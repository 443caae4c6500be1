package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackRoundTrip(t *testing.T) {
	data := EncodeCallback("mode", "multi-agent")
	assert.Equal(t, "mode:multi-agent", data)

	action, value, ok := ParseCallback(data)
	assert.True(t, ok)
	assert.Equal(t, "mode", action)
	assert.Equal(t, "multi-agent", value)
}

func TestParseCallback_Invalid(t *testing.T) {
	for _, data := range []string{"", "mode", "mode:", ":value"} {
		_, _, ok := ParseCallback(data)
		assert.False(t, ok, "data %q should not parse", data)
	}
}

func TestParseCallback_ValueWithSeparator(t *testing.T) {
	action, value, ok := ParseCallback("export:pdf:extra")
	assert.True(t, ok)
	assert.Equal(t, "export", action)
	assert.Equal(t, "pdf:extra", value)
}
