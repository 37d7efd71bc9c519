// Package spin implements a shared multi-line terminal spinner: a Display
// that redraws a block of lines in place, a Spinner per in-flight task, and
// a Controller goroutine that advances every active spinner's animation.
package spin

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// Display owns a contiguous block of terminal lines shared by every active
// spinner. Each registered handle gets one line; the block is redrawn in
// place in registration order.
type Display struct {
	mu        sync.Mutex
	out       io.Writer
	width     func() int
	order     []int
	lines     map[int]string
	released  map[int]bool
	active    int
	lastCount int
	nextID    int
}

// NewDisplay creates a Display writing to out. A nil width func queries the
// terminal on every redraw; lines are truncated to the reported width.
func NewDisplay(out io.Writer, width func() int) *Display {
	if width == nil {
		width = terminalWidth
	}
	return &Display{
		out:      out,
		width:    width,
		lines:    make(map[int]string),
		released: make(map[int]bool),
	}
}

var (
	defaultDisplay     *Display
	defaultDisplayOnce sync.Once
)

// Default returns the process-wide Display bound to stdout.
func Default() *Display {
	defaultDisplayOnce.Do(func() {
		defaultDisplay = NewDisplay(os.Stdout, nil)
	})
	return defaultDisplay
}

// terminalWidth reports the current stdout width, or 0 when stdout is not a
// terminal (meaning: don't truncate).
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// Register appends a line to the bottom of the block, redraws, and returns
// the line's handle.
func (d *Display) Register(initialLine string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	handle := d.nextID
	d.nextID++
	d.order = append(d.order, handle)
	d.lines[handle] = initialLine
	d.active++
	d.renderLocked()
	return handle
}

// Update replaces the handle's line and redraws. Updates for unknown or
// released handles are ignored so a pending tick cannot race a stop.
func (d *Display) Update(handle int, line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.lines[handle]; !ok || d.released[handle] {
		return
	}
	d.lines[handle] = line
	d.renderLocked()
}

// Release detaches the handle from further updates. Its last line stays in
// the block so finished entries remain visible while the rest of the batch
// runs; once no active handles remain, all block state resets so the next
// batch does not inherit stale cursor math.
func (d *Display) Release(handle int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.lines[handle]; !ok || d.released[handle] {
		return
	}
	d.released[handle] = true
	d.active--
	if d.active <= 0 {
		d.order = nil
		d.lines = make(map[int]string)
		d.released = make(map[int]bool)
		d.active = 0
		d.lastCount = 0
	}
}

// renderLocked redraws the whole block: move the cursor back to the top of
// the previously written block, then clear and rewrite every line in
// registration order. Callers must hold d.mu.
func (d *Display) renderLocked() {
	width := d.width()
	var buf strings.Builder
	if d.lastCount > 0 {
		buf.WriteString("\r")
		buf.WriteString(cursorPrevLines(d.lastCount))
	}
	for _, handle := range d.order {
		line := d.lines[handle]
		if width > 0 {
			line = ansi.Truncate(line, width, "")
		}
		buf.WriteString(clearLine)
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	fmt.Fprint(d.out, buf.String())
	d.lastCount = len(d.order)
}
