package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayNameCache(t *testing.T) {
	c := NewDisplayNameCache(time.Minute)

	_, ok := c.Get("u1")
	assert.False(t, ok)

	c.Save("u1", "alice")
	name, ok := c.Get("u1")
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	c.Delete("u1")
	_, ok = c.Get("u1")
	assert.False(t, ok)
}

func TestDisplayNameCacheExpires(t *testing.T) {
	c := NewDisplayNameCache(20 * time.Millisecond)
	c.Save("u1", "alice")

	assert.Eventually(t, func() bool {
		_, ok := c.Get("u1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
