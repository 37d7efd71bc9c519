package spin

import "fmt"

// ANSI escape sequences used by the display.
const (
	// clearLine clears from the cursor to the end of the line.
	clearLine = "\033[K"
)

// cursorPrevLines returns an escape sequence moving the cursor up n lines
// and back to column 0.
func cursorPrevLines(n int) string {
	return fmt.Sprintf("\033[%dF", n)
}
