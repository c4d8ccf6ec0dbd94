// Package payments creates payment intents with an external processor.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter ISO code")
)

// IntentRequest describes a charge in the smallest currency unit.
type IntentRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Intent is the processor's handle for a pending charge. ClientSecret is
// handed to the browser to confirm the payment.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// Provider creates payment intents.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// LocalProvider issues intents locally without contacting a processor.
// It is the default for development and tests.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (p *LocalProvider) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, req.Currency)
	}

	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return &Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Amount:       req.Amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}

// ToMinorUnits converts a decimal amount to cents, rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	if amount < 0 {
		return -ToMinorUnits(-amount)
	}
	return int64(amount*100 + 0.5)
}
