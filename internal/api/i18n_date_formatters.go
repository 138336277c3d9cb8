package api

import (
	"fmt"
	"strings"
	"time"
)

func localizedMonthYear(language string, value time.Time) string {
	months, ok := monthShortNames[strings.ToLower(strings.TrimSpace(language))]
	if !ok || len(months) < 12 {
		return value.Format("Jan 2006")
	}
	return fmt.Sprintf("%s %d", months[int(value.Month())-1], value.Year())
}

func localizedDateLabel(language string, value time.Time) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	weekdays, weekdaysOK := weekdayShortNames[lang]
	months, monthsOK := monthShortNames[lang]
	if !weekdaysOK || !monthsOK {
		return value.Format("Mon, Jan 2")
	}

	weekday := weekdays[int(value.Weekday())]
	month := months[int(value.Month())-1]
	return fmt.Sprintf("%s, %s %d", weekday, month, value.Day())
}

func localizedShortDay(language string, value time.Time) string {
	months, ok := monthShortNames[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return value.Format("Jan 2")
	}
	return fmt.Sprintf("%s %d", months[int(value.Month())-1], value.Day())
}
