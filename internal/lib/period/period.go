// Package period содержит календарные расчёты для периодов членства:
// дату окончания периода по расчётному циклу и окно продления.
package period

import (
	"time"
)

// RenewalWindowDays — за сколько дней до окончания текущего членства
// разрешено оформлять продление.
const RenewalWindowDays = 30

// End возвращает дату окончания периода членства, начавшегося в start.
// Для цикла "Yearly" прибавляется год, для любого другого — месяц.
func End(start time.Time, billingCycle string) time.Time {
	if billingCycle == "Yearly" {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

// TooEarlyToRenew сообщает, что продлевать ещё рано: до окончания
// текущего членства остаётся больше RenewalWindowDays дней.
func TooEarlyToRenew(expiry, today time.Time) bool {
	return Date(expiry).AddDate(0, 0, -RenewalWindowDays).After(Date(today))
}

// NextStart возвращает дату начала нового периода — день, следующий
// за окончанием предыдущего членства.
func NextStart(expiry time.Time) time.Time {
	return Date(expiry).AddDate(0, 0, 1)
}

// Date отбрасывает время, оставляя только календарную дату в UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
