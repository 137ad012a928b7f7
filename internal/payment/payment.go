package payment

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodUnselected Method = ""
	MethodCash       Method = "Cash"
	MethodEWallet    Method = "GCash"
)

// EWalletProvider is the third-party mobile payment provider backing the
// e-wallet method.
const EWalletProvider = "GCash"

// ReferenceLength is the fixed length of an e-wallet transaction reference.
const ReferenceLength = 13

var (
	ErrNoPaymentMethod  = errors.New("no payment method selected")
	ErrInsufficientCash = errors.New("cash tendered is missing, invalid, or below the total")
	ErrInvalidReference = errors.New("reference number must be exactly 13 digits")
)

// Selection is the raw tender input captured from the operator. Only the
// field matching Method is meaningful.
type Selection struct {
	Method          Method
	CashTendered    string
	ReferenceNumber string
}

// Receipt is the validated tender. Change is zero unless the method is cash,
// and never negative.
type Receipt struct {
	Method          Method
	CashTendered    decimal.Decimal
	Change          decimal.Decimal
	ReferenceNumber string
}

// FilterReference is the accept-filter for reference-number input: non-digit
// characters are dropped and anything past the fixed length is ignored.
func FilterReference(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == ReferenceLength {
			break
		}
	}
	return b.String()
}

// Validate gates the transition to submission. It is re-run on every
// confirmation attempt and never touches the cart.
func Validate(sel Selection, total decimal.Decimal) (*Receipt, error) {
	switch sel.Method {
	case MethodCash:
		cash, err := decimal.NewFromString(strings.TrimSpace(sel.CashTendered))
		if err != nil || cash.Sign() <= 0 || cash.LessThan(total) {
			return nil, ErrInsufficientCash
		}
		return &Receipt{
			Method:       MethodCash,
			CashTendered: cash,
			Change:       cash.Sub(total),
		}, nil
	case MethodEWallet:
		ref := FilterReference(sel.ReferenceNumber)
		if len(ref) != ReferenceLength {
			return nil, ErrInvalidReference
		}
		return &Receipt{Method: MethodEWallet, ReferenceNumber: ref}, nil
	default:
		return nil, ErrNoPaymentMethod
	}
}
