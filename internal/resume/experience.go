package resume

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date ranges appear as "Mar 2021 - Sept 2021", "Feb 2025 – Present" or
// bare year spans like "2019 - 2022". The dash may be a hyphen or en dash.
var dateRangePattern = regexp.MustCompile(
	`(?i)([A-Za-z]+\s+\d{4}|\d{4})\s*[–\-]\s*([A-Za-z]+\s+\d{4}|\d{4}|present)`)

var monthNumbers = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

type yearMonth struct {
	year  int
	month int
}

// experienceYears sums the elapsed months of every parseable date range in
// the text and converts to years. Ranges with an unparseable bound are
// skipped, future bounds are clamped to now. Overlapping ranges are summed
// as-is.
func experienceYears(text string, now time.Time) float64 {
	nowYM := yearMonth{year: now.Year(), month: int(now.Month())}

	totalMonths := 0
	for _, m := range dateRangePattern.FindAllStringSubmatch(text, -1) {
		start, ok := parseYearMonth(m[1])
		if !ok {
			continue
		}

		var end yearMonth
		if strings.EqualFold(strings.TrimSpace(m[2]), "present") {
			end = nowYM
		} else {
			end, ok = parseYearMonth(m[2])
			if !ok {
				continue
			}
		}

		start = clampYM(start, nowYM)
		end = clampYM(end, nowYM)

		months := (end.year-start.year)*12 + (end.month - start.month)
		if months > 0 {
			totalMonths += months
		}
	}

	return float64(totalMonths) / 12
}

func parseYearMonth(s string) (yearMonth, bool) {
	parts := strings.Fields(strings.TrimSpace(s))
	switch len(parts) {
	case 1:
		year, err := strconv.Atoi(parts[0])
		if err != nil || year < 1900 || year > 2200 {
			return yearMonth{}, false
		}
		return yearMonth{year: year, month: 1}, true
	case 2:
		month, ok := monthNumbers[strings.ToLower(parts[0])]
		if !ok {
			return yearMonth{}, false
		}
		year, err := strconv.Atoi(parts[1])
		if err != nil || year < 1900 || year > 2200 {
			return yearMonth{}, false
		}
		return yearMonth{year: year, month: month}, true
	default:
		return yearMonth{}, false
	}
}

func clampYM(v, max yearMonth) yearMonth {
	if v.year > max.year || (v.year == max.year && v.month > max.month) {
		return max
	}
	return v
}
