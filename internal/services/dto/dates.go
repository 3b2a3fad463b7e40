package dto

import (
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// ParseDate разбирает дату YYYY-MM-DD в полночь UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
