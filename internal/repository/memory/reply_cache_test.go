package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReplyCacheRoundTrip(t *testing.T) {
	c := NewReplyCache(time.Minute)

	_, found := c.Get("prompt")
	assert.False(t, found)

	c.Save("prompt", "Try Lab Safety 101.")
	reply, found := c.Get("prompt")
	assert.True(t, found)
	assert.Equal(t, "Try Lab Safety 101.", reply)

	_, found = c.Get("prompt ")
	assert.False(t, found)
}

func TestReplyCacheExpires(t *testing.T) {
	c := NewReplyCache(20 * time.Millisecond)
	c.Save("prompt", "reply")

	assert.Eventually(t, func() bool {
		_, found := c.Get("prompt")
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestDisabledReplyCache(t *testing.T) {
	c := NewReplyCache(0)
	assert.Nil(t, c)

	c.Save("prompt", "reply")
	_, found := c.Get("prompt")
	assert.False(t, found)
}
