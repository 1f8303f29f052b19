package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter receives progress events from the generation pipeline. The
// pipeline never formats user-facing output itself; it emits events and
// lets the reporter decide presentation.
type Reporter interface {
	DirectoryCreated(path string)
	FileWritten(path string, size int64)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Console renders progress events as indented, color-marked lines.
type Console struct {
	out    io.Writer
	errOut io.Writer
}

// NewConsole returns a Reporter writing progress to out and problems to errOut.
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, errOut: errOut}
}

// DirectoryCreated reports a newly created directory.
func (c *Console) DirectoryCreated(path string) {
	fmt.Fprintf(c.out, "  %s %s/\n", color.New(color.FgGreen).Sprint("create"), path)
}

// FileWritten reports a written file and its size.
func (c *Console) FileWritten(path string, size int64) {
	fmt.Fprintf(c.out, "  %s %s (%d bytes)\n", color.New(color.FgGreen).Sprint("create"), path, size)
}

// Warningf reports a non-fatal problem.
func (c *Console) Warningf(format string, args ...any) {
	fmt.Fprintf(c.errOut, "%s %s\n", color.New(color.FgYellow).Sprint("warning:"), fmt.Sprintf(format, args...))
}

// Errorf reports a fatal problem.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.errOut, "%s %s\n", color.New(color.FgRed).Sprint("error:"), fmt.Sprintf(format, args...))
}

// Discard drops every event. Useful for tests and quiet callers.
type Discard struct{}

func (Discard) DirectoryCreated(string)      {}
func (Discard) FileWritten(string, int64)    {}
func (Discard) Warningf(string, ...any)      {}
func (Discard) Errorf(string, ...any)        {}
