// Package razorpay содержит типы полезной нагрузки вебхуков Razorpay
// и проверку их подписи.
package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyWebhookSignature проверяет подпись из заголовка X-Razorpay-Signature:
// HMAC-SHA256 от тела запроса с секретом вебхука, в hex-кодировке.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
