package models

// Варианты расчётного периода.
const (
	BillingCycleYearly  = "Yearly"
	BillingCycleMonthly = "Monthly"
)

// Settings — единственная запись с настройками членств: расчётный
// период, реквизиты для выставления счетов, шаблоны уведомлений
// и секрет для проверки подписи вебхуков.
type Settings struct {
	BillingCycle         string // Расчётный период: Yearly или Monthly
	Company              string // Компания по умолчанию для счетов
	DebitAccount         string // Дебетовый счёт для счетов
	SendEmail            bool   // Отправлять ли письмо-подтверждение
	SendInvoice          bool   // Включать ли счёт в письмо-подтверждение
	EmailTemplateSubject string // Шаблон темы письма (text/template)
	EmailTemplateBody    string // Шаблон текста письма (text/template)
	WebhookSecret        string // Секрет для проверки подписи вебхука
}
