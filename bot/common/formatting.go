package common

import (
	"fmt"
	"strings"
	"time"
)

// Embed colors
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
)

// FormatPoints formats a points amount with thousand separators
func FormatPoints(points int64) string {
	if points < 0 {
		return "-" + FormatPoints(-points)
	}

	str := fmt.Sprintf("%d", points)
	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatSignedPoints formats a change with an explicit sign
func FormatSignedPoints(change int64) string {
	if change > 0 {
		return "+" + FormatPoints(change)
	}
	return FormatPoints(change)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// Mention formats a Discord user mention
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}
