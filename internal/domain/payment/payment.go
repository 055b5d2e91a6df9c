package payment

import (
	"errors"
	"time"
)

const (
	MethodIntent       = "intent"
	MethodCard         = "card"
	MethodMobileMoney  = "mobile_money"
	MethodBankTransfer = "bank_transfer"
)

const (
	StatusRequiresConfirmation = "requires_confirmation"
	StatusSucceeded            = "succeeded"
	StatusPending              = "pending"
)

var ErrNotFound = errors.New("payment not found")

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Payment struct {
	ID           string    `json:"id"`
	Method       string    `json:"method"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	Customer     Customer  `json:"customer"`
	ProviderRef  string    `json:"provider_ref,omitempty"`
	Network      string    `json:"network,omitempty"`
	Bank         string    `json:"bank,omitempty"`
	AccountLast4 string    `json:"account_last4,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type IntentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0,lte=1000000,money"`
	Currency string  `json:"currency" binding:"omitempty,len=3,alpha"`
}

// ChargeRequest covers every direct payment method. Method specific fields
// are enforced with required_if.
type ChargeRequest struct {
	Method        string  `json:"method" binding:"required,oneof=card mobile_money bank_transfer"`
	Amount        float64 `json:"amount" binding:"required,gt=0,lte=1000000,money"`
	Currency      string  `json:"currency" binding:"omitempty,len=3,alpha"`
	CustomerName  string  `json:"customer_name" binding:"required,max=120"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	CustomerPhone string  `json:"customer_phone" binding:"omitempty,max=40"`
	MobileNumber  string  `json:"mobile_number" binding:"required_if=Method mobile_money,omitempty,max=40"`
	MobileNetwork string  `json:"mobile_network" binding:"required_if=Method mobile_money,omitempty,max=40"`
	BankName      string  `json:"bank_name" binding:"required_if=Method bank_transfer,omitempty,max=120"`
	AccountNumber string  `json:"account_number" binding:"required_if=Method bank_transfer,omitempty,min=4,max=34"`
}

// Intent is what a provider hands back before the client confirms a charge.
type Intent struct {
	ID           string
	ClientSecret string
}
