package razorpay

import (
	"encoding/json"
	"fmt"
	"sort"
)

// EventSubscriptionCharged — единственное событие, по которому создаётся
// новый период членства; остальные события игнорируются.
const EventSubscriptionCharged = "subscription.charged"

// Event — корневая структура вебхука Razorpay.
type Event struct {
	Event   string  `json:"event"`
	Payload Payload `json:"payload"`
}

// Payload содержит сущности подписки и платежа из вебхука.
type Payload struct {
	Subscription struct {
		Entity Subscription `json:"entity"`
	} `json:"subscription"`
	Payment struct {
		Entity Payment `json:"entity"`
	} `json:"payment"`
}

// Subscription — сущность подписки Razorpay. Времена приходят
// абсолютными метками unix-секунд.
type Subscription struct {
	ID           string          `json:"id"`
	PlanID       string          `json:"plan_id"`
	CurrentStart int64           `json:"current_start"` // Начало текущего расчётного периода
	CurrentEnd   int64           `json:"current_end"`   // Конец текущего расчётного периода
	StartAt      int64           `json:"start_at"`      // Начало действия подписки
	EndAt        int64           `json:"end_at"`        // Конец действия подписки
	Notes        json.RawMessage `json:"notes"`         // Объект или строка с заметками
}

// Payment — сущность платежа Razorpay. Amount приходит в минимальных
// единицах валюты (пайсах).
type Payment struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Amount     int64  `json:"amount"`
	CustomerID string `json:"customer_id"`
}

// NotesLines разворачивает заметки подписки в строки вида "ключ: значение".
// Razorpay может прислать notes как объектом, так и строкой; пустые
// заметки дают пустой результат.
func (s Subscription) NotesLines() []string {
	if len(s.Notes) == 0 {
		return nil
	}

	var asMap map[string]string
	if err := json.Unmarshal(s.Notes, &asMap); err == nil {
		keys := make([]string, 0, len(asMap))
		for k := range asMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", k, asMap[k]))
		}
		return lines
	}

	var asString string
	if err := json.Unmarshal(s.Notes, &asString); err == nil && asString != "" {
		return []string{asString}
	}
	return nil
}
