package repositories

import "time"

const dateLayout = "2006-01-02"

// sqlDate - календарная дата для сравнения с колонками типа date
func sqlDate(t time.Time) string {
	return t.Format(dateLayout)
}
