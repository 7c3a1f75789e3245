package text

import (
	"fmt"
	"time"
)

// Clock formats t as a local wall-clock time, or blanks of the same width
// for the zero time.
func Clock(t time.Time) string {
	if t.IsZero() {
		return "--:--:--"
	}
	return t.Local().Format("15:04:05")
}

// Count renders "1 node" / "3 nodes".
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
