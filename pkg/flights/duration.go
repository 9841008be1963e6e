package flights

import (
	"regexp"
	"strconv"
	"strings"
)

var isoDurationRegex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?)?$`)

// HumanizeDuration renders an ISO-8601 itinerary duration such as PT30H15M as "30h 15m".
// Days are folded into hours. Anything it cannot parse is returned unchanged.
func HumanizeDuration(iso string) string {
	match := isoDurationRegex.FindStringSubmatch(iso)
	if match == nil || iso == "P" || iso == "PT" {
		return iso
	}
	days := atoi(match[1])
	hours := atoi(match[2]) + days*24
	minutes := atoi(match[3])

	var parts []string
	if hours > 0 {
		parts = append(parts, strconv.Itoa(hours)+"h")
	}
	if minutes > 0 || hours == 0 {
		parts = append(parts, strconv.Itoa(minutes)+"m")
	}
	return strings.Join(parts, " ")
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
