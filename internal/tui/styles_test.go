package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasColorSupport(t *testing.T) {
	tests := []struct {
		name    string
		noColor *string
		term    string
		want    bool
	}{
		{name: "default terminal", term: "xterm-256color", want: true},
		{name: "NO_COLOR set", noColor: ptr("1"), term: "xterm-256color", want: false},
		{name: "NO_COLOR empty still disables", noColor: ptr(""), term: "xterm-256color", want: false},
		{name: "dumb terminal", term: "dumb", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERM", tt.term)
			if tt.noColor != nil {
				t.Setenv("NO_COLOR", *tt.noColor)
			} else {
				unsetEnv(t, "NO_COLOR")
			}
			assert.Equal(t, tt.want, HasColorSupport())
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3), "never truncates")
	assert.Equal(t, 4, displayWidth("日本"))
	assert.Equal(t, "日本 ", padRight("日本", 5))
}

func TestNewStyles(t *testing.T) {
	table := NewTableStyles()
	assert.True(t, table.Header.GetBold())

	out := NewOutputStyles()
	assert.True(t, out.Success.GetBold())
	assert.True(t, out.Error.GetBold())
	assert.False(t, out.Info.GetBold())
}

func ptr(s string) *string { return &s }
