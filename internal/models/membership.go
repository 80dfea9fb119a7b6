package models

import "time"

// Статусы членства.
const (
	MembershipStatusCurrent   = "Current"
	MembershipStatusExpired   = "Expired"
	MembershipStatusCancelled = "Cancelled"
)

// Membership представляет один оплачиваемый период действия членства
// участника: [FromDate, ToDate] с типом, статусом и данными оплаты.
type Membership struct {
	ID             int       // Идентификатор записи
	MemberUID      string    // Участник, которому принадлежит членство
	MembershipType string    // Название тарифного плана
	Status         string    // Статус: Current, Expired, Cancelled
	FromDate       time.Time // Дата начала периода
	ToDate         time.Time // Дата окончания периода
	Paid           bool      // Признак оплаты
	Currency       string    // Валюта платежа
	Amount         float64   // Сумма платежа в основных единицах валюты
	PaymentID      string    // Идентификатор платежа в шлюзе
	InvoiceID      int       // Ссылка на счёт (0 — счёт не выставлен)
}

// DummyMembership используется для приёма данных из JSON-запроса
// на создание или продление членства. Дата приходит строкой
// в формате 02-01-2006 и учитывается только для администратора.
type DummyMembership struct {
	MembershipType string  `json:"membership_type" validate:"required"` // Название тарифного плана
	FromDate       string  `json:"from_date,omitempty"`                 // Дата начала (только для администратора)
	Paid           bool    `json:"paid"`                                // Признак оплаты
	Currency       string  `json:"currency,omitempty"`                  // Валюта платежа
	Amount         float64 `json:"amount,omitempty" validate:"gte=0"`   // Сумма платежа
}
