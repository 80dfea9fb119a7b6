package models

// MembershipType описывает тарифный план членства: привязанную
// товарную позицию для выставления счетов и идентификатор плана
// в платёжном шлюзе, по которому план находится при обработке вебхуков.
type MembershipType struct {
	Name           string  // Название плана
	ItemCode       string  // Код привязанной товарной позиции
	ItemName       string  // Название товарной позиции
	Amount         float64 // Стоимость плана
	Currency       string  // Валюта плана
	RazorpayPlanID string  // Идентификатор плана в Razorpay
}
