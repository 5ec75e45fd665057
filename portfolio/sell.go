package portfolio

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrFormClosed    = errors.New("transaction form is closed")
	ErrWrongState    = errors.New("operation not allowed in current form state")
	ErrNothingToSell = errors.New("no holding left to sell")
)

type SellOutcome string

const (
	// SellOK means the requested amount can be sold as-is.
	SellOK SellOutcome = "ok"
	// SellClamped means the request exceeded the holding and was capped to it.
	// The caller must get explicit confirmation before selling.
	SellClamped SellOutcome = "clamped"
)

type SellCheck struct {
	Outcome     SellOutcome `json:"outcome"`
	Amount      float64     `json:"amount"`
	FullSellout bool        `json:"fullSellout"`
}

// ValidateSellAmount checks a requested sell against the held amount. It is a
// numeric boundary check only.
func ValidateSellAmount(asset Asset, requested float64) SellCheck {
	if requested > asset.Amount {
		return SellCheck{Outcome: SellClamped, Amount: asset.Amount, FullSellout: true}
	}
	return SellCheck{Outcome: SellOK, Amount: requested, FullSellout: requested == asset.Amount}
}

type FormState string

const (
	Editing    FormState = "editing"
	Validating FormState = "validating"
	Confirmed  FormState = "confirmed"
	Adjusted   FormState = "adjusted"
	Cancelled  FormState = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s FormState) Terminal() bool {
	return s == Confirmed || s == Cancelled
}

// TradeForm tracks one in-progress buy or sell entry for an asset.
//
//	Editing -> Validating -> Confirmed | Adjusted | Cancelled
//	Adjusted -> Confirmed | Cancelled | Editing
type TradeForm struct {
	asset  Asset
	kind   TransactionType
	state  FormState
	amount float64
	check  SellCheck
}

func NewTradeForm(asset Asset, kind TransactionType) *TradeForm {
	return &TradeForm{asset: asset, kind: kind, state: Editing}
}

func (f *TradeForm) State() FormState { return f.state }

func (f *TradeForm) Amount() float64 { return f.amount }

func (f *TradeForm) Kind() TransactionType { return f.kind }

// FullSellout reports whether the amount the form settled on sells the whole holding.
func (f *TradeForm) FullSellout() bool {
	return f.kind == Sell && f.check.FullSellout
}

// SetAmount edits the requested amount. Editing an adjusted form returns it to
// Editing, discarding the proposed clamp.
func (f *TradeForm) SetAmount(amount float64) error {
	switch f.state {
	case Editing, Adjusted:
	default:
		if f.state.Terminal() {
			return ErrFormClosed
		}
		return fmt.Errorf("%w: set amount while %s", ErrWrongState, f.state)
	}
	f.amount = amount
	f.check = SellCheck{}
	f.state = Editing
	return nil
}

// Submit validates the entered amount. A buy or an in-bounds sell is
// Confirmed; an oversized sell is Adjusted to the holding and needs Confirm.
// A sell against an empty holding fails with ErrNothingToSell and leaves the
// form in Editing.
func (f *TradeForm) Submit() (FormState, error) {
	if f.state != Editing {
		if f.state.Terminal() {
			return f.state, ErrFormClosed
		}
		return f.state, fmt.Errorf("%w: submit while %s", ErrWrongState, f.state)
	}
	if f.amount <= 0 || math.IsNaN(f.amount) || math.IsInf(f.amount, 0) {
		return f.state, ErrInvalidAmount
	}

	f.state = Validating
	if f.kind != Sell {
		f.state = Confirmed
		return f.state, nil
	}

	check := ValidateSellAmount(f.asset, f.amount)
	if check.Amount <= 0 {
		f.state = Editing
		return f.state, ErrNothingToSell
	}
	f.check = check
	f.amount = check.Amount
	switch f.check.Outcome {
	case SellClamped:
		f.state = Adjusted
	default:
		f.state = Confirmed
	}
	return f.state, nil
}

// Confirm accepts the adjusted amount.
func (f *TradeForm) Confirm() error {
	if f.state != Adjusted {
		if f.state.Terminal() {
			return ErrFormClosed
		}
		return fmt.Errorf("%w: confirm while %s", ErrWrongState, f.state)
	}
	f.state = Confirmed
	return nil
}

func (f *TradeForm) Cancel() error {
	if f.state.Terminal() {
		return ErrFormClosed
	}
	f.state = Cancelled
	return nil
}

// Check returns the last sell validation result.
func (f *TradeForm) Check() SellCheck { return f.check }
