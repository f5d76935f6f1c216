package dates

import (
	"fmt"
	"strings"
	"time"
)

// YearFromDate parses the first 4 characters of a YYYY or YYYY-MM-DD string.
// BibTeX braces around the value are ignored.
func YearFromDate(date string) int {
	date = strings.Trim(strings.TrimSpace(date), "{}")
	if len(date) >= 4 {
		var y int
		if _, err := fmt.Sscanf(date[:4], "%4d", &y); err == nil {
			return y
		}
	}
	return 0
}

// ExtractYear scans a string and returns the first plausible 4-digit year, so
// values like "circa 1987" or "Spring 2020" still sort by year.
func ExtractYear(s string) int {
	s = strings.TrimSpace(s)
	for i := 0; i+4 <= len(s); i++ {
		if !isDigits(s[i : i+4]) {
			continue
		}
		var y int
		if _, err := fmt.Sscanf(s[i:i+4], "%d", &y); err == nil {
			if y >= 1000 && y <= time.Now().Year()+1 {
				return y
			}
		}
	}
	return 0
}

// EntryYear picks the year of a record from its year field, falling back to
// its date field.
func EntryYear(year, date string) int {
	if y := YearFromDate(year); y > 0 {
		return y
	}
	if y := ExtractYear(year); y > 0 {
		return y
	}
	return YearFromDate(date)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
