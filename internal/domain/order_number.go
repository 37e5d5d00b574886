package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var OrderNumberPattern = regexp.MustCompile(`^REV-\d+-[A-Z0-9]{9}$`)

// NewOrderNumber returns REV-<unix millis>-<9 uppercase alphanumerics>.
func NewOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, 9)
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate order number: %w", err)
		}
		suffix[i] = orderNumberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("REV-%d-%s", now.UnixMilli(), suffix), nil
}
