package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderNumberGenerator produces customer-facing order numbers of the form
// LV-<year>-<tag>. The tag is an HMAC over the order id and a nonce, so it
// is unguessable without the secret.
type OrderNumberGenerator struct {
	secret string
}

func NewOrderNumberGenerator(secret string) *OrderNumberGenerator {
	return &OrderNumberGenerator{secret: secret}
}

func (g *OrderNumberGenerator) Generate(orderID string, at time.Time) string {
	nonce := uuid.NewString()

	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(fmt.Sprintf("order:%s|nonce:%s", orderID, nonce)))

	tag := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("LV-%d-%s", at.Year(), strings.ToUpper(tag[:6]))
}
