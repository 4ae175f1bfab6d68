package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Lang selects the display language for dates
type Lang string

const (
	LangEN Lang = "en"
	LangTH Lang = "th"
)

// BuddhistEraOffset converts a Gregorian year to the Thai calendar
const BuddhistEraOffset = 543

var englishMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var thaiMonthsAbbr = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

var (
	monthDayYear = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	yearMonth    = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	yearOnly     = regexp.MustCompile(`^(\d{4})$`)
)

// ParseLang maps a user supplied language tag to a Lang, defaulting to English
func ParseLang(s string) Lang {
	if strings.EqualFold(strings.TrimSpace(s), string(LangTH)) {
		return LangTH
	}
	return LangEN
}

// FormatQuoteDate renders a catalog date. Accepted inputs are mm/dd/yyyy,
// yyyy-mm and yyyy; anything else is returned trimmed, or "-" when blank.
func FormatQuoteDate(raw string, lang Lang) string {
	s := strings.Trim(strings.TrimSpace(raw), `"`)
	if s == "" {
		return "-"
	}

	var year, month, day int
	if m := monthDayYear.FindStringSubmatch(s); m != nil {
		month, day, year = atoi(m[1]), atoi(m[2]), atoi(m[3])
	} else if m := yearMonth.FindStringSubmatch(s); m != nil {
		year, month = atoi(m[1]), atoi(m[2])
	} else if m := yearOnly.FindStringSubmatch(s); m != nil {
		year = atoi(m[1])
	} else {
		return s
	}
	if month > 12 {
		return s
	}

	if lang == LangTH {
		year += BuddhistEraOffset
	}
	switch {
	case month > 0 && day > 0:
		return fmt.Sprintf("%d %s %d", day, monthName(month, lang), year)
	case month > 0:
		return fmt.Sprintf("%s %d", monthName(month, lang), year)
	default:
		return strconv.Itoa(year)
	}
}

// FormatPlayedAt renders a play time in t's own location
func FormatPlayedAt(t time.Time, lang Lang) string {
	year := t.Year()
	if lang == LangTH {
		year += BuddhistEraOffset
	}
	return fmt.Sprintf("%d %s %d, %02d:%02d:%02d",
		t.Day(), monthName(int(t.Month()), lang), year, t.Hour(), t.Minute(), t.Second())
}

func monthName(month int, lang Lang) string {
	if lang == LangTH {
		return thaiMonthsAbbr[month-1]
	}
	return englishMonths[month-1]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
