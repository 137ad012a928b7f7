package cart

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FransManlangit/jicus-pos/internal/domain"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrIndexOutOfRange = errors.New("no cart line at that position")
)

type Line struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Store holds the lines of the active checkout session in insertion order.
// It is owned by a single register session and is not safe for concurrent
// use; the submit call is the only async boundary and the checkout service
// blocks re-entry while one is in flight.
type Store struct {
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// AddOrMerge appends a line for the product, or bumps the quantity of the
// existing line when the product is already in the cart.
func (s *Store) AddOrMerge(p domain.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity += quantity
			return nil
		}
	}
	s.lines = append(s.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  quantity,
	})
	return nil
}

func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	return nil
}

func (s *Store) Increment(index int) error {
	if index < 0 || index >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	s.lines[index].Quantity++
	return nil
}

// Decrement lowers the quantity by one but never below 1. Removing the line
// is a separate, explicit action.
func (s *Store) Decrement(index int) error {
	if index < 0 || index >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	if s.lines[index].Quantity > 1 {
		s.lines[index].Quantity--
	}
	return nil
}

// SetQuantity replaces the quantity at index with the parsed value. Input
// that does not parse as a positive integer is rejected, not clamped and not
// ignored.
func (s *Store) SetQuantity(index int, value string) error {
	if index < 0 || index >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	q, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || q < 1 {
		return ErrInvalidQuantity
	}
	s.lines[index].Quantity = q
	return nil
}

func (s *Store) Clear() {
	s.lines = nil
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s *Store) Len() int {
	return len(s.lines)
}

// Lines returns a copy so callers cannot mutate the cart behind its back.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}
