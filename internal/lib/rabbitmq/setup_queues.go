// Package rabbitmq содержит вспомогательные функции для работы с брокером
// сообщений: подключение с повторами, объявление обменника и очередей,
// публикацию и потребление сообщений.
package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации, с которым она
// привязывается к обменнику notifications.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключи маршрутизации исходящей почты.
const (
	RoutingKeyAcknowledgement = "acknowledgement"
	RoutingKeyAdmin           = "admin"
)

// NotificationsExchange — обменник почтовых уведомлений.
const NotificationsExchange = "notifications"

// GetNotificationQueues возвращает очереди почтовых уведомлений:
// письма-подтверждения участникам и уведомления администраторам об ошибках.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.acknowledgement", RoutingKey: RoutingKeyAcknowledgement},
		{QueueName: "notification.admin", RoutingKey: RoutingKeyAdmin},
	}
}
