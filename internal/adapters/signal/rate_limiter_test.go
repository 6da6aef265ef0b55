package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChatRateLimiterBlocksOverLimit(t *testing.T) {
	rl := NewChatRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("p1"), "message %d", i+1)
	}
	assert.False(t, rl.Allow("p1"))

	// Other players have their own window.
	assert.True(t, rl.Allow("p2"))
}

func TestChatRateLimiterWindowSlides(t *testing.T) {
	rl := NewChatRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("p1"))
	assert.False(t, rl.Allow("p1"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("p1"))
}
