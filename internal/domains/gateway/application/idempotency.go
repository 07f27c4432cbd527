package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
)

type normalizedOrderLine struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// FingerprintCreateOrder builds a deterministic hash of the create-order
// payload, excluding the idempotency key itself. Prices hash through the
// canonical decimal string, so 12.50 and 12.5000 fingerprint identically.
func FingerprintCreateOrder(input gwtypes.CreateOrderInput) (string, error) {
	normalized := make([]normalizedOrderLine, 0, len(input.Details))
	for _, line := range input.Details {
		normalized = append(normalized, normalizedOrderLine{
			ProductID: line.ProductID,
			Price:     line.Price.String(),
			Quantity:  line.Quantity,
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
