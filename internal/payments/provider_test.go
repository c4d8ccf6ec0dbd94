package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalProvider_CreateIntent(t *testing.T) {
	p := NewLocalProvider()

	intent, err := p.CreateIntent(context.Background(), IntentRequest{
		Amount:   1999,
		Currency: "USD",
		Metadata: map[string]string{"order_id": "12"},
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(intent.ID, "pi_"))
	require.True(t, strings.HasPrefix(intent.ClientSecret, intent.ID+"_secret_"))
	require.Equal(t, int64(1999), intent.Amount)
	require.Equal(t, "usd", intent.Currency)

	other, err := p.CreateIntent(context.Background(), IntentRequest{Amount: 1, Currency: "eur"})
	require.NoError(t, err)
	require.NotEqual(t, intent.ID, other.ID)
}

func TestLocalProvider_Validation(t *testing.T) {
	p := NewLocalProvider()

	_, err := p.CreateIntent(context.Background(), IntentRequest{Amount: 0, Currency: "usd"})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = p.CreateIntent(context.Background(), IntentRequest{Amount: 100, Currency: "dollars"})
	require.ErrorIs(t, err, ErrInvalidCurrency)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.CreateIntent(ctx, IntentRequest{Amount: 100, Currency: "usd"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestToMinorUnits(t *testing.T) {
	require.Equal(t, int64(1999), ToMinorUnits(19.99))
	require.Equal(t, int64(1000), ToMinorUnits(10))
	require.Equal(t, int64(30), ToMinorUnits(0.1+0.2))
	require.Equal(t, int64(-250), ToMinorUnits(-2.5))
}
