package notify

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	// Disable ANSI sequences so assertions see plain text.
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var b strings.Builder
	c := NewConsoleWriter(&b)

	c.Infof("inserted %d events", 3)
	c.Warnf("skipped calendar %q", "work")
	c.Errorf("authentication failed")

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"inserted 3 events",
		`skipped calendar "work"`,
		"authentication failed",
	}, lines)
}
