package models

// EmailTask — задание на отправку письма, публикуемое в очередь
// уведомлений и доставляемое воркером notification-sender.
type EmailTask struct {
	To      []string `json:"to"`      // Получатели
	Subject string   `json:"subject"` // Тема письма
	Body    string   `json:"body"`    // Текст письма
}
