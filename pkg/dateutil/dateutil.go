package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FiscalYearLabel returns the UK fiscal year label for the year starting in April of startYear, e.g. 2024 -> "2024/25".
func FiscalYearLabel(startYear int) string {
	return fmt.Sprintf("%d/%02d", startYear, (startYear+1)%100)
}

// ParseFiscalYear returns the calendar year in which a UK fiscal year label starts.
func ParseFiscalYear(label string) (int, error) {
	parts := strings.Split(strings.TrimSpace(label), "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid fiscal year label %q", label)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid fiscal year label %q: %w", label, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid fiscal year label %q: %w", label, err)
	}
	if end != (start+1)%100 {
		return 0, fmt.Errorf("invalid fiscal year label %q: years are not consecutive", label)
	}
	return start, nil
}

// ParseCalendarYear parses a Spanish tax year key such as "2024".
func ParseCalendarYear(key string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, fmt.Errorf("invalid calendar year %q: %w", key, err)
	}
	return year, nil
}

// FiscalYearStart returns 6 April of startYear, the first day of the UK tax year.
func FiscalYearStart(startYear int) time.Time {
	return time.Date(startYear, time.April, 6, 0, 0, 0, 0, time.UTC)
}

// FiscalYearEnd returns 5 April of the following year.
func FiscalYearEnd(startYear int) time.Time {
	return time.Date(startYear+1, time.April, 5, 0, 0, 0, 0, time.UTC)
}

// FiscalMonths lists UK tax year months in order, April through March.
func FiscalMonths() []time.Month {
	months := make([]time.Month, 0, 12)
	for i := 0; i < 12; i++ {
		months = append(months, time.Month((int(time.April)-1+i)%12+1))
	}
	return months
}

// CalendarMonths lists January through December.
func CalendarMonths() []time.Month {
	months := make([]time.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, m)
	}
	return months
}

// ShortMonth returns the three letter English month name.
func ShortMonth(m time.Month) string {
	return m.String()[:3]
}
