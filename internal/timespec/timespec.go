// Package timespec parses and formats human-entered durations like "1d12h30m"
// or "1д12ч30м". Latin and Cyrillic single-letter unit suffixes map to the
// same five magnitudes.
package timespec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var tokenRe = regexp.MustCompile(`(\d+)([wdhmsндчмс])`)

var unitSeconds = map[string]int64{
	"w": 604800, "н": 604800,
	"d": 86400, "д": 86400,
	"h": 3600, "ч": 3600,
	"m": 60, "м": 60,
	"s": 1, "с": 1,
}

// Parse sums all recognized <integer><unit> tokens in s. Unknown unit letters
// are simply skipped by the tokenizer. Returns false when nothing matched or
// the sum is zero — callers treat such input as free text, not a duration.
func Parse(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	matches := tokenRe.FindAllStringSubmatch(strings.ToLower(s), -1)
	if len(matches) == 0 {
		return 0, false
	}
	var total int64
	for _, m := range matches {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		total += n * unitSeconds[m[2]]
	}
	if total == 0 {
		return 0, false
	}
	return time.Duration(total) * time.Second, true
}

// Format renders a duration the way the bot reports it: bare seconds under a
// minute, otherwise day/hour/minute components. The seconds component is
// dropped whenever a day component is present; that lossy rounding is the
// established output format.
func Format(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 60 {
		return fmt.Sprintf("%d сек.", total)
	}

	days := total / 86400
	rem := total % 86400
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d дн.", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d ч.", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d мин.", minutes))
	}
	if seconds > 0 && days == 0 {
		parts = append(parts, fmt.Sprintf("%d сек.", seconds))
	}
	if len(parts) == 0 {
		return "0 сек."
	}
	return strings.Join(parts, " ")
}
