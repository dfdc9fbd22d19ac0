package domain

import (
	"math/rand"

	catalogdomain "github.com/ecomarket/marketplace/internal/domains/catalog/domain"
)

// Status enumerates order progression. The lifecycle is one-directional:
// pending to approved, no rejection or cancellation path.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Order records a purchase against a product snapshot. The JSON shape matches
// the order entries inside users.json.
type Order struct {
	ID      string                `json:"orderId"`
	Product catalogdomain.Product `json:"product"`
	Status  Status                `json:"status"`
}

// Approve transitions pending to approved. Re-approving is a no-op; the
// return value tells the caller whether the status actually changed, so no
// duplicate notification is emitted.
func (o *Order) Approve() bool {
	if o.Status == StatusApproved {
		return false
	}
	o.Status = StatusApproved
	return true
}

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// orderIDLength keeps ids short enough to type at a prompt (~1.7M
// combinations at 4 chars). Uniqueness comes from retrying against the taken
// set, not from the randomness itself.
const orderIDLength = 4

// retriesPerLength bounds the rejection loop before the id widens by one
// character, so generation terminates even on a crowded id space.
const retriesPerLength = 32

// OrderIDGenerator produces short uppercase base-36 order identifiers.
type OrderIDGenerator struct {
	intN func(int) int
}

func NewOrderIDGenerator() *OrderIDGenerator {
	return &OrderIDGenerator{intN: rand.Intn}
}

// Next returns an identifier not matched by taken.
func (g *OrderIDGenerator) Next(taken func(id string) bool) string {
	length := orderIDLength
	for {
		for attempt := 0; attempt < retriesPerLength; attempt++ {
			id := g.generate(length)
			if taken == nil || !taken(id) {
				return id
			}
		}
		length++
	}
}

func (g *OrderIDGenerator) generate(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = orderIDAlphabet[g.intN(len(orderIDAlphabet))]
	}
	return string(buf)
}
