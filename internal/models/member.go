// Package models содержит доменные структуры: участники, членства,
// тарифные планы, настройки и счета, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Member представляет участника организации — лицо, которое может
// оформлять периодические членства.
type Member struct {
	UID                   string     // Уникальный идентификатор участника
	FullName              string     // Полное имя
	Email                 string     // Электронная почта
	MembershipType        string     // Название тарифного плана по умолчанию
	CustomerID            string     // Идентификатор клиента в платёжном шлюзе
	SubscriptionID        string     // Идентификатор подписки в платёжном шлюзе
	SubscriptionStart     *time.Time // Начало окна активации подписки
	SubscriptionEnd       *time.Time // Конец окна активации подписки
	SubscriptionActivated bool       // Флаг активированной подписки
}

// MemberComment — комментарий, привязанный к участнику
// (например, заметки из платёжного шлюза).
type MemberComment struct {
	ID        int
	MemberUID string
	Content   string
	CreatedAt time.Time
}
