package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ShimmerConfig holds configuration for the selected-row shimmer
type ShimmerConfig struct {
	Enabled      bool
	ReduceMotion bool    // static highlight instead of animation
	SpeedMs      int     // tick interval
	WidthRatio   float64 // highlight width relative to the text
	CycleMs      int     // time for one sweep
	PauseMs      int     // pause between sweeps
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:    true,
		SpeedMs:    100,
		WidthRatio: 0.25,
		CycleMs:    1800,
		PauseMs:    500,
	}
}

// ShimmerState tracks the sweep position. It is shared by pointer between
// copies of the owning model
type ShimmerState struct {
	Config    ShimmerConfig
	TrueColor bool

	center     float64
	lastUpdate time.Time
	pausedAt   time.Time
	paused     bool
	active     bool
	now        func() time.Time
}

// shimmerTickMsg is sent when the shimmer should advance
type shimmerTickMsg struct{}

// NewShimmerState creates a new shimmer state
func NewShimmerState(config ShimmerConfig) *ShimmerState {
	s := &ShimmerState{
		Config:    config,
		TrueColor: os.Getenv("COLORTERM") == "truecolor",
		now:       time.Now,
	}
	s.lastUpdate = s.now()
	s.active = s.animated()
	return s
}

func (s *ShimmerState) animated() bool {
	return s.Config.Enabled && !s.Config.ReduceMotion
}

// SetActive pauses or resumes the animation (e.g. while a modal is open)
func (s *ShimmerState) SetActive(active bool) {
	s.active = active && s.animated()
}

// Reset restarts the sweep (call when selection changes)
func (s *ShimmerState) Reset() {
	s.center = 0
	s.paused = false
	s.lastUpdate = s.now()
}

// Tick returns the command driving the animation, nil when not animating
func (s *ShimmerState) Tick() tea.Cmd {
	if !s.active {
		return nil
	}
	return tea.Tick(time.Duration(s.Config.SpeedMs)*time.Millisecond, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// advance moves the highlight along a text of n glyphs
func (s *ShimmerState) advance(n int) {
	now := s.now()
	if n <= 0 || now.Sub(s.lastUpdate) < time.Duration(s.Config.SpeedMs)*time.Millisecond {
		return
	}
	s.lastUpdate = now

	if s.paused {
		if now.Sub(s.pausedAt) >= time.Duration(s.Config.PauseMs)*time.Millisecond {
			s.paused = false
			s.center = -float64(n) * s.Config.WidthRatio
		}
		return
	}

	ticks := float64(s.Config.CycleMs) / float64(s.Config.SpeedMs)
	s.center += float64(n) * (1 + 2*s.Config.WidthRatio) / ticks

	end := float64(n) * (1 + s.Config.WidthRatio)
	if s.center >= end {
		s.center = end
		s.paused = true
		s.pausedAt = now
	}
}

// Render returns text (cut to maxWidth glyphs) with the shimmer applied
func (s *ShimmerState) Render(text string, maxWidth int) string {
	runes := []rune(truncate(text, maxWidth))
	if len(runes) == 0 {
		return ""
	}

	if !s.active {
		return fmt.Sprintf("\033[38;2;167;139;250m%s\033[0m", string(runes)) // ColorAccentBright
	}

	s.advance(len(runes))
	if !s.TrueColor {
		return s.render256(runes)
	}
	return s.renderTrueColor(runes)
}

func (s *ShimmerState) renderTrueColor(runes []rune) string {
	var b strings.Builder

	// #B1B8C7 blended towards #EAE6FF
	base := [3]float64{177, 184, 199}
	peak := [3]float64{234, 230, 255}

	sigma := math.Max(1, s.Config.WidthRatio*float64(len(runes))/2)
	for i, r := range runes {
		dx := float64(i) - s.center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c",
			int(base[0]+(peak[0]-base[0])*w),
			int(base[1]+(peak[1]-base[1])*w),
			int(base[2]+(peak[2]-base[2])*w),
			r)
	}
	b.WriteString("\033[0m")
	return b.String()
}

func (s *ShimmerState) render256(runes []rune) string {
	width := max(1, int(s.Config.WidthRatio*float64(len(runes))))
	start := int(s.center) - width/2

	var b strings.Builder
	for i, r := range runes {
		if i >= start && i < start+width {
			fmt.Fprintf(&b, "\033[38;5;147m%c", r)
		} else {
			fmt.Fprintf(&b, "\033[38;5;250m%c", r)
		}
	}
	b.WriteString("\033[0m")
	return b.String()
}

// truncate cuts s to width glyphs, ending with "..." when cut
func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
