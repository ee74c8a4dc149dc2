package service

import (
	"fmt"
	"strconv"
	"time"
)

// CompactNumber abbreviates large counts the way dashboard cards show them:
// 342, 15.2K, 1.5M.
func CompactNumber(n int64) string {
	switch {
	case n < 0:
		return "-" + CompactNumber(-n)
	case n < 1_000:
		return strconv.FormatInt(n, 10)
	case n < 1_000_000:
		return scaled(n, 1_000, "K")
	case n < 1_000_000_000:
		return scaled(n, 1_000_000, "M")
	default:
		return scaled(n, 1_000_000_000, "B")
	}
}

// scaled truncates to one decimal so 999_999 never reads as 1000K.
func scaled(n, unit int64, suffix string) string {
	tenths := n * 10 / unit
	if tenths%10 == 0 {
		return strconv.FormatInt(tenths/10, 10) + suffix
	}
	return fmt.Sprintf("%d.%d%s", tenths/10, tenths%10, suffix)
}

// RelativeTime describes t relative to now, e.g. "2 days ago" or "1 week ago".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	}
	switch {
	case d < time.Hour:
		return ago(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return ago(int(d/time.Hour), "hour")
	case d < 7*24*time.Hour:
		return ago(int(d/(24*time.Hour)), "day")
	case d < 30*24*time.Hour:
		return ago(int(d/(7*24*time.Hour)), "week")
	case d < 365*24*time.Hour:
		return ago(int(d/(30*24*time.Hour)), "month")
	default:
		return ago(int(d/(365*24*time.Hour)), "year")
	}
}

func ago(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
