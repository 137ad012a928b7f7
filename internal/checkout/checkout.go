package checkout

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FransManlangit/jicus-pos/internal/cart"
	"github.com/FransManlangit/jicus-pos/internal/domain"
	"github.com/FransManlangit/jicus-pos/internal/payment"
	"github.com/FransManlangit/jicus-pos/internal/pricing"
	"github.com/FransManlangit/jicus-pos/internal/session"
)

// OrderAPI is the slice of the backend client the checkout needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, order *domain.Order, idempotencyKey string) error
}

// Result is what the register shows once an order lands.
type Result struct {
	Totals pricing.Totals
	Method payment.Method
	Change decimal.Decimal
}

// Service drives one checkout session: it gates submission behind payment
// validation and the session identity, assembles the order, and clears the
// cart only after the backend accepts it.
type Service struct {
	api  OrderAPI
	cart *cart.Store
	calc *pricing.Calculator
	log  *slog.Logger

	busy           atomic.Bool
	status         Status
	idempotencyKey string
}

func NewService(api OrderAPI, cartStore *cart.Store, calc *pricing.Calculator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		api:    api,
		cart:   cartStore,
		calc:   calc,
		log:    log,
		status: StatusPending,
	}
}

func (s *Service) Status() Status {
	return s.status
}

// Busy reports whether a submission is on the wire; the UI disables the
// confirm affordance while it is.
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Totals derives the current order totals straight from the cart.
func (s *Service) Totals() pricing.Totals {
	return s.calc.Totals(s.cart.Lines())
}

// Reset starts a fresh checkout session for the next sale. The cart is not
// touched; abandoning a tender discards only the payment selection.
func (s *Service) Reset() {
	s.status = StatusPending
	s.idempotencyKey = ""
}

// Confirm validates the tender and submits the order. On success the cart is
// cleared; on any failure it is left untouched so the operator can retry.
// While a submission is in flight further confirmations are rejected.
func (s *Service) Confirm(ctx context.Context, auth *domain.Session, sel payment.Selection) (*Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInFlight
	}
	defer s.busy.Store(false)

	if auth == nil || !auth.IsAuthenticated || auth.Token == "" {
		return nil, session.ErrNotAuthenticated
	}
	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	totals := s.calc.Totals(s.cart.Lines())
	receipt, err := payment.Validate(sel, totals.TotalPrice)
	if err != nil {
		return nil, err
	}

	if !CanTransitionTo(s.status, StatusSubmitting) {
		return nil, ErrIllegalTransition
	}
	s.status = StatusSubmitting

	// One key per checkout session, reused across operator retries, so the
	// backend can deduplicate a re-confirmation whose first attempt landed.
	if s.idempotencyKey == "" {
		s.idempotencyKey = uuid.NewString()
	}

	order := buildOrder(auth.UserID, s.cart.Lines(), totals, receipt)
	if err := s.api.CreateOrder(ctx, auth.Token, order, s.idempotencyKey); err != nil {
		s.status = StatusFailed
		s.log.Warn("order submission failed", "error", err, "total", totals.TotalPrice)
		return nil, err
	}

	s.status = StatusCompleted
	s.cart.Clear()
	s.idempotencyKey = ""
	s.log.Info("order submitted", "total", totals.TotalPrice, "method", string(receipt.Method))

	return &Result{
		Totals: totals,
		Method: receipt.Method,
		Change: receipt.Change,
	}, nil
}

func buildOrder(userID string, lines []cart.Line, totals pricing.Totals, receipt *payment.Receipt) *domain.Order {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{Product: l.ProductID, Quantity: l.Quantity})
	}

	order := &domain.Order{
		UserID:        userID,
		OrderItems:    items,
		PaymentMethod: string(receipt.Method),
		ItemsPrice:    totals.ItemsPrice.InexactFloat64(),
		TaxPrice:      totals.TaxPrice.InexactFloat64(),
		TotalPrice:    totals.TotalPrice.InexactFloat64(),
	}

	switch receipt.Method {
	case payment.MethodCash:
		cash := receipt.CashTendered.InexactFloat64()
		order.CashAmount = &cash
	case payment.MethodEWallet:
		wallet := payment.EWalletProvider
		ref := receipt.ReferenceNumber
		order.EWallet = &wallet
		order.ReferenceNumber = &ref
	}
	return order
}
