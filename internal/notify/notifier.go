package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Notifier is the fire-and-forget channel for user-facing status messages:
// success summaries, partial-failure warnings and terminal errors.
type Notifier interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Console writes colored notifications to a terminal stream.
type Console struct {
	out io.Writer
}

// NewConsole creates a console notifier writing to stderr.
func NewConsole() *Console {
	return &Console{out: os.Stderr}
}

// NewConsoleWriter creates a console notifier writing to w.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) printfln(s string, args ...interface{}) {
	fmt.Fprintf(c.out, s+"\n", args...)
}

// Infof reports a success or neutral status.
func (c *Console) Infof(format string, args ...interface{}) {
	c.printfln(color.HiGreenString(format), args...)
}

// Warnf reports a non-fatal problem, such as a single failed source.
func (c *Console) Warnf(format string, args ...interface{}) {
	c.printfln(color.HiYellowString(format), args...)
}

// Errorf reports a terminal failure for the current request.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.printfln(color.RedString(format), args...)
}
