package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackData_RoundTrip(t *testing.T) {
	data := CallbackData(ActionApprove, 42)
	assert.Equal(t, "approve:42", data)

	action, id, ok := ParseCallback(data)
	assert.True(t, ok)
	assert.Equal(t, ActionApprove, action)
	assert.Equal(t, int64(42), id)
}

func TestParseCallback_Invalid(t *testing.T) {
	for _, data := range []string{"", "approve", "approve:", ":5", "reject:abc"} {
		_, _, ok := ParseCallback(data)
		assert.False(t, ok, data)
	}
}
