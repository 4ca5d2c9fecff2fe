package token

import (
	"fmt"
	"time"
)

// LockSignal describes what is known about a token's liquidity lock.
type LockSignal int

const (
	LockUnknown LockSignal = iota
	LockLocked
	LockUnlocked
)

// Record is a normalized snapshot of one discovered token at one point in
// time. Records are built by the source adapters and never mutated after
// construction; chain + contract address form the identity key used for
// deduplication.
type Record struct {
	// Identity
	Chain           string
	ContractAddress string
	Symbol          string
	Name            string

	// Market
	PriceUSD       float64
	MarketCap      float64
	LiquidityUSD   float64
	Volume1H       float64
	Volume24H      float64
	PriceChange1H  float64 // percent, may be negative
	PriceChange24H float64 // percent, may be negative

	// Exchange
	DEX         string
	PairAddress string
	URL         string

	// Contract metadata
	Verified    bool
	CreatedAt   time.Time // zero when the source does not report it
	HolderCount int       // 0 when unknown
	AuditInfo   string    // empty when absent

	// Liquidity lock
	Lock LockSignal

	// Social metadata
	HasWebsite bool
	HasSocials bool

	// Whale signal: share of pool liquidity a typical large trade represents,
	// in [0,1]. Only meaningful when HasWhaleData is true.
	WhaleConcentration float64
	HasWhaleData       bool

	Source    string
	ScannedAt time.Time
}

// Validate checks that all required fields are present. Optional fields
// (audit info, social links, holder count, creation time, lock signal, whale
// data) are legitimately absent and never produce an error.
func (r *Record) Validate() error {
	switch {
	case r.Chain == "":
		return fmt.Errorf("token record: missing chain")
	case r.ContractAddress == "":
		return fmt.Errorf("token record: missing contract address")
	case r.Symbol == "":
		return fmt.Errorf("token record: missing symbol")
	case r.Name == "":
		return fmt.Errorf("token record: missing name")
	case r.PriceUSD <= 0:
		return fmt.Errorf("token record: missing price")
	case r.MarketCap < 0:
		return fmt.Errorf("token record: negative market cap")
	case r.LiquidityUSD < 0:
		return fmt.Errorf("token record: negative liquidity")
	case r.Volume1H < 0 || r.Volume24H < 0:
		return fmt.Errorf("token record: negative volume")
	}
	return nil
}

// Key returns the dedup identity for this record.
func (r *Record) Key() string {
	return r.Chain + ":" + r.ContractAddress
}

// LiquidityRatio returns liquidity / market cap and whether the ratio is
// defined. A zero market cap leaves the ratio undefined.
func (r *Record) LiquidityRatio() (float64, bool) {
	if r.MarketCap <= 0 {
		return 0, false
	}
	return r.LiquidityUSD / r.MarketCap, true
}

// Age returns the token age at the given instant and whether the creation
// time is known.
func (r *Record) Age(now time.Time) (time.Duration, bool) {
	if r.CreatedAt.IsZero() {
		return 0, false
	}
	return now.Sub(r.CreatedAt), true
}
