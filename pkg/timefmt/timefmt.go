// Package timefmt renders accumulated study time for display.
package timefmt

import "fmt"

// Clock formats a second count as mm:ss, or hh:mm:ss once an hour has been
// accrued. Negative input is treated as zero.
func Clock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h == 0 {
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
