package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Default truncation limits for movie cards
const (
	DefaultTitleLimit    = 35
	DefaultOverviewLimit = 120
)

// NotAvailable is shown for missing numbers
const NotAvailable = "N/A"

// Tier groups ratings for coloring
type Tier string

const (
	TierGold   Tier = "gold"
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// RatingTier returns the color tier of a vote average
func RatingTier(rating float64) Tier {
	switch {
	case rating >= 8:
		return TierGold
	case rating >= 7:
		return TierGreen
	case rating >= 6:
		return TierYellow
	default:
		return TierRed
	}
}

// FormatRating formats a vote average with one decimal
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

// Truncate shortens s to limit runes and appends "..." when it was cut.
// A limit of zero or less disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}

// FormatRuntime renders minutes as "2h 15min"
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}

// FormatMoney renders a dollar amount with thousands separators, or N/A for zero
func FormatMoney(amount int64) string {
	if amount <= 0 {
		return NotAvailable
	}
	return "$" + groupThousands(amount)
}

// FormatCount renders a count with thousands separators
func FormatCount(n int) string {
	if n < 0 {
		return "-" + groupThousands(int64(-n))
	}
	return groupThousands(int64(n))
}

// FormatReleaseDate renders a release date as "Jan 2006"
func FormatReleaseDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "Unknown"
	}
	return t.Format("Jan 2006")
}

// FormatYear renders the year of a release date
func FormatYear(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "Unknown"
	}
	return strconv.Itoa(t.Year())
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
