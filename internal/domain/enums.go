package domain

import "strings"

// OrderStatus values are the wire codes used by the storefront.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "CHO_XAC_NHAN"
	OrderStatusShipping  OrderStatus = "DANG_GIAO"
	OrderStatusCompleted OrderStatus = "HOAN_THANH"
	OrderStatusCancelled OrderStatus = "DA_HUY"
)

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:  {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal targets from this status.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	allowed := orderStatusTransitions[s]
	out := make([]OrderStatus, len(allowed))
	copy(out, allowed)
	return out
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderStatusTransitions[s]) == 0 && s.IsValid()
}

func (s OrderStatus) IsModifiable() bool {
	return s == OrderStatusPending
}

// ParseOrderStatus matches the raw string case-insensitively against the
// status wire codes.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", NewValidationError("invalid status: %s, must be one of: %s, %s, %s, %s",
			raw, OrderStatusPending, OrderStatusShipping, OrderStatusCompleted, OrderStatusCancelled)
	}
	return status, nil
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "TIEN_MAT"
	PaymentMethodCOD          PaymentMethod = "COD"
	PaymentMethodBankTransfer PaymentMethod = "CHUYEN_KHOAN"
	PaymentMethodCreditCard   PaymentMethod = "THE_CREDIT"
)

// Payment methods are submitted by name, not by wire code.
var paymentMethodNames = map[string]PaymentMethod{
	"CASH":          PaymentMethodCash,
	"COD":           PaymentMethodCOD,
	"BANK_TRANSFER": PaymentMethodBankTransfer,
	"CREDIT_CARD":   PaymentMethodCreditCard,
}

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodCreditCard:
		return true
	default:
		return false
	}
}

// RequiresConfirmation reports whether the payment must be manually verified.
func (p PaymentMethod) RequiresConfirmation() bool {
	return p == PaymentMethodBankTransfer
}

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if method, ok := paymentMethodNames[name]; ok {
		return method, nil
	}
	return "", NewValidationError("invalid payment method: %s", raw)
}
