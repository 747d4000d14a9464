package capratio

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// DefaultGoldTonnes is the published estimate of the total above-ground gold
// stock, in metric tonnes, as of 2024-02-01.
var DefaultGoldTonnes = decimal.NewFromInt(212585)

// EstimateSource tells where a gold estimate comes from.
type EstimateSource int

const (
	DefaultEstimate EstimateSource = iota
	UserOverride
)

// String implements the fmt.Stringer interface.
func (s EstimateSource) String() string {
	if s == UserOverride {
		return "user-override"
	}
	return "default"
}

// GoldEstimate is the above-ground gold stock used as gold's "supply".
type GoldEstimate struct {
	Tonnes Quantity
	Source EstimateSource
}

// GoldEstimateStore holds the above-ground tonnage for one invocation.
//
// It accepts at most one override, and only before the first Get: the first
// read freezes the estimate so every gold valuation within a run uses the
// same tonnage. It is an explicit object passed by reference, deliberately
// not a package global.
type GoldEstimateStore struct {
	mu         sync.Mutex
	est        GoldEstimate
	consumed   bool
	overridden bool
}

// NewGoldEstimateStore returns a store seeded with DefaultGoldTonnes.
func NewGoldEstimateStore() *GoldEstimateStore {
	return &GoldEstimateStore{est: GoldEstimate{Tonnes: Q(DefaultGoldTonnes), Source: DefaultEstimate}}
}

// Get returns the current estimate and freezes the store: no override is
// accepted afterwards.
func (s *GoldEstimateStore) Get() GoldEstimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumed = true
	return s.est
}

// Override replaces the default estimate with a user-supplied tonnage.
// It fails with ErrEstimateConsumed once the store has been read or already
// overridden, and rejects a negative tonnage outright.
func (s *GoldEstimateStore) Override(tonnes Quantity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed || s.overridden {
		return fmt.Errorf("cannot override the above-ground estimate to %s tonnes: %w", tonnes, ErrEstimateConsumed)
	}
	if tonnes.IsNegative() {
		return fmt.Errorf("above-ground estimate must not be negative, got %s: %w", tonnes, ErrInvalidToken)
	}
	s.est = GoldEstimate{Tonnes: tonnes, Source: UserOverride}
	s.overridden = true
	return nil
}
