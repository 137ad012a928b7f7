package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutInFlight  = errors.New("a checkout submission is already in flight")
	ErrIllegalTransition = errors.New("illegal transition of checkout status")
)
