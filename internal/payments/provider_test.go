package payments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/geocoder89/hallulies/internal/domain/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	rows map[string]payment.Payment
	err  error
}

func newMemStore() *memStore { return &memStore{rows: map[string]payment.Payment{}} }

func (m *memStore) Create(_ context.Context, p payment.Payment) error {
	if m.err != nil {
		return m.err
	}
	m.rows[p.ID] = p
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := m.rows[id]
	if !ok {
		return payment.Payment{}, payment.ErrNotFound
	}
	return p, nil
}

func TestCreateIntent(t *testing.T) {
	store := newMemStore()
	svc := NewService(MockProvider{}, store, "GHS")

	p, intent, err := svc.CreateIntent(context.Background(), payment.IntentRequest{Amount: 250})
	require.NoError(t, err)

	assert.Equal(t, payment.StatusRequiresConfirmation, p.Status)
	assert.Equal(t, "GHS", p.Currency)
	assert.Equal(t, intent.ID, p.ProviderRef)
	assert.True(t, strings.HasPrefix(intent.ClientSecret, intent.ID+"_secret_"))
	assert.Contains(t, store.rows, p.ID)
}

func TestChargeStatusByMethod(t *testing.T) {
	tests := []struct {
		name   string
		req    payment.ChargeRequest
		status string
		check  func(t *testing.T, p payment.Payment)
	}{
		{
			name:   "card settles",
			req:    payment.ChargeRequest{Method: payment.MethodCard, Amount: 120, CustomerName: "Ama", CustomerPhone: "0200000000"},
			status: payment.StatusSucceeded,
			check: func(t *testing.T, p payment.Payment) {
				assert.Equal(t, "0200000000", p.Customer.Phone)
			},
		},
		{
			name:   "mobile money pending",
			req:    payment.ChargeRequest{Method: payment.MethodMobileMoney, Amount: 80, MobileNumber: "0241111111", MobileNetwork: "MTN", Currency: "usd"},
			status: payment.StatusPending,
			check: func(t *testing.T, p payment.Payment) {
				assert.Equal(t, "0241111111", p.Customer.Phone)
				assert.Equal(t, "MTN", p.Network)
				assert.Equal(t, "USD", p.Currency)
			},
		},
		{
			name:   "bank transfer keeps last four",
			req:    payment.ChargeRequest{Method: payment.MethodBankTransfer, Amount: 500, BankName: "GCB", AccountNumber: "1234567890"},
			status: payment.StatusPending,
			check: func(t *testing.T, p payment.Payment) {
				assert.Equal(t, "7890", p.AccountLast4)
				assert.Contains(t, Instructions(p), "ending in 7890")
				assert.Contains(t, Instructions(p), p.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(MockProvider{}, newMemStore(), "GHS")
			p, err := svc.Charge(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, p.Status)
			tt.check(t, p)
		})
	}
}

func TestChargeUnsupportedMethod(t *testing.T) {
	svc := NewService(MockProvider{}, newMemStore(), "GHS")
	_, err := svc.Charge(context.Background(), payment.ChargeRequest{Method: "cheque", Amount: 1})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestChargeStoreError(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("db down")
	svc := NewService(MockProvider{}, store, "GHS")

	_, err := svc.Charge(context.Background(), payment.ChargeRequest{Method: payment.MethodCard, Amount: 1})
	assert.Error(t, err)
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc := NewService(MockProvider{}, newMemStore(), "GHS")
	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, payment.ErrNotFound)
}
