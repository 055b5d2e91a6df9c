// Package payments turns payment requests into stored payment records. The
// gateway itself sits behind Provider; MockProvider stands in until a real
// processor is wired.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/geocoder89/hallulies/internal/domain/payment"
	"github.com/google/uuid"
)

var ErrUnsupportedMethod = errors.New("unsupported payment method")

type Provider interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (payment.Intent, error)
}

// Store persists payment records.
type Store interface {
	Create(ctx context.Context, p payment.Payment) error
	GetByID(ctx context.Context, id string) (payment.Payment, error)
}

type MockProvider struct{}

func (MockProvider) CreateIntent(_ context.Context, amount float64, currency string) (payment.Intent, error) {
	if amount <= 0 {
		return payment.Intent{}, fmt.Errorf("amount must be positive, got %v", amount)
	}
	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return payment.Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
	}, nil
}

type Service struct {
	provider Provider
	store    Store
	currency string
	now      func() time.Time
}

func NewService(provider Provider, store Store, currency string) *Service {
	return &Service{provider: provider, store: store, currency: currency, now: time.Now}
}

func (s *Service) currencyOr(c string) string {
	if c == "" {
		return s.currency
	}
	return strings.ToUpper(c)
}

// CreateIntent asks the provider for a client secret and records the
// payment as awaiting confirmation.
func (s *Service) CreateIntent(ctx context.Context, req payment.IntentRequest) (payment.Payment, payment.Intent, error) {
	currency := s.currencyOr(req.Currency)

	intent, err := s.provider.CreateIntent(ctx, req.Amount, currency)
	if err != nil {
		return payment.Payment{}, payment.Intent{}, fmt.Errorf("create intent: %w", err)
	}

	p := payment.Payment{
		ID:          uuid.NewString(),
		Method:      payment.MethodIntent,
		Amount:      req.Amount,
		Currency:    currency,
		Status:      payment.StatusRequiresConfirmation,
		ProviderRef: intent.ID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.Create(ctx, p); err != nil {
		return payment.Payment{}, payment.Intent{}, err
	}
	return p, intent, nil
}

// Charge records a direct payment. Cards settle immediately; mobile money
// and bank transfers wait for the customer to complete them.
func (s *Service) Charge(ctx context.Context, req payment.ChargeRequest) (payment.Payment, error) {
	p := payment.Payment{
		ID:       uuid.NewString(),
		Method:   req.Method,
		Amount:   req.Amount,
		Currency: s.currencyOr(req.Currency),
		Customer: payment.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		CreatedAt: s.now().UTC(),
	}

	switch req.Method {
	case payment.MethodCard:
		p.Status = payment.StatusSucceeded
	case payment.MethodMobileMoney:
		p.Status = payment.StatusPending
		p.Customer.Phone = req.MobileNumber
		p.Network = req.MobileNetwork
	case payment.MethodBankTransfer:
		p.Status = payment.StatusPending
		p.Bank = req.BankName
		p.AccountLast4 = last4(req.AccountNumber)
	default:
		return payment.Payment{}, ErrUnsupportedMethod
	}

	if err := s.store.Create(ctx, p); err != nil {
		return payment.Payment{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (payment.Payment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return payment.Payment{}, payment.ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}

// Instructions is the customer facing next step for a pending payment.
func Instructions(p payment.Payment) string {
	switch p.Method {
	case payment.MethodMobileMoney:
		return "Payment initiated. Please check your mobile money app to complete the transaction."
	case payment.MethodBankTransfer:
		return fmt.Sprintf("Please transfer %s %.2f to our %s account ending in %s. Reference: %s",
			p.Currency, p.Amount, p.Bank, p.AccountLast4, p.ID)
	case payment.MethodCard:
		return "Payment completed successfully."
	default:
		return ""
	}
}

func last4(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}
