package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Ilham", truncate("Ilham", 10))
	assert.Equal(t, "Muham...", truncate("Muhammad Ilham", 8))
	assert.Equal(t, "Zoë...", truncate("Zoë Kravitz", 6))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "abc", truncate("abc", 0))
}

func TestShimmer_ReduceMotionIsStatic(t *testing.T) {
	cfg := DefaultShimmerConfig()
	cfg.ReduceMotion = true
	s := NewShimmerState(cfg)

	assert.Nil(t, s.Tick())
	out := s.Render("Ilham", 20)
	assert.Contains(t, out, "Ilham")
	assert.Equal(t, "", s.Render("", 20))
}

func TestShimmer_SweepsAndPauses(t *testing.T) {
	clock := time.Unix(0, 0)
	s := NewShimmerState(DefaultShimmerConfig())
	s.now = func() time.Time { return clock }
	s.Reset()
	s.TrueColor = true

	step := time.Duration(s.Config.SpeedMs) * time.Millisecond
	for i := 0; i < 100 && !s.paused; i++ {
		clock = clock.Add(step)
		s.Render("Employee", 20)
	}
	assert.True(t, s.paused, "sweep should reach the end of the text")

	clock = clock.Add(time.Duration(s.Config.PauseMs) * time.Millisecond)
	out := s.Render("Employee", 20)
	assert.False(t, s.paused)
	assert.Less(t, s.center, 0.0)
	assert.Equal(t, len("Employee"), strings.Count(out, "\033[38;2;"))
}

func TestShimmer_InactiveStopsTicking(t *testing.T) {
	s := NewShimmerState(DefaultShimmerConfig())
	assert.NotNil(t, s.Tick())

	s.SetActive(false)
	assert.Nil(t, s.Tick())

	s.SetActive(true)
	assert.NotNil(t, s.Tick())
}
