package models

import "time"

// Статусы счёта.
const (
	InvoiceStatusDraft     = "Draft"
	InvoiceStatusSubmitted = "Submitted"
)

// Invoice представляет счёт, выставленный за оплаченное членство.
// Счёт содержит одну позицию: товар тарифного плана по ставке,
// равной сумме членства.
type Invoice struct {
	ID           int       // Идентификатор счёта
	CustomerID   string    // Клиент (идентификатор в платёжном шлюзе)
	Company      string    // Компания, от имени которой выставлен счёт
	DebitAccount string    // Дебетовый счёт
	Currency     string    // Валюта счёта
	Status       string    // Статус: Draft или Submitted
	ItemCode     string    // Код товарной позиции
	Quantity     int       // Количество (всегда 1)
	Rate         float64   // Ставка — сумма членства
	Total        float64   // Итоговая сумма
	MembershipID int       // Членство, за которое выставлен счёт
	CreatedAt    time.Time // Дата создания
}
