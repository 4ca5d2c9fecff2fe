package storage

import (
	"time"

	"gorm.io/gorm"
)

// AppState stores application state for checkpointing
type AppState struct {
	StateKey   string `gorm:"primaryKey;size:64"`
	StateValue string `gorm:"type:text;not null"`
	UpdatedTS  int64  `gorm:"not null;index"`
}

func (AppState) TableName() string {
	return "app_state"
}

// NotifiedToken records every token that was surfaced to the user, keyed by
// chain:contract so the same token is never alerted twice.
type NotifiedToken struct {
	TokenKey        string  `gorm:"primaryKey;size:160"`
	Chain           string  `gorm:"size:32;not null;index"`
	ContractAddress string  `gorm:"size:128;not null"`
	Symbol          string  `gorm:"size:32;not null"`
	Name            string  `gorm:"size:255;not null"`
	PriceUSD        float64 `gorm:"type:decimal(30,12);not null"`
	MarketCap       float64 `gorm:"type:decimal(20,2);not null"`
	LiquidityUSD    float64 `gorm:"type:decimal(20,2);not null"`
	CompositeScore  float64 `gorm:"type:decimal(6,2);not null;index"`
	SecurityScore   float64 `gorm:"type:decimal(6,2);not null"`
	RiskLevel       string  `gorm:"size:20;not null"`
	RiskProfile     string  `gorm:"size:20;not null"`
	DEX             string  `gorm:"size:64"`
	PairURL         string  `gorm:"size:512"`
	NotifiedTS      int64   `gorm:"not null;index"`
	CreatedTS       int64   `gorm:"not null"`
}

func (NotifiedToken) TableName() string {
	return "notified_tokens"
}

// ScanRecord stores per-cycle statistics for the summary reports
type ScanRecord struct {
	ID                     int64 `gorm:"primaryKey;autoIncrement"`
	StartedTS              int64 `gorm:"not null;index"`
	DurationMs             int64 `gorm:"not null"`
	TokensFetched          int   `gorm:"not null;default:0"`
	TokensScanned          int   `gorm:"not null;default:0"`
	RejectedByFilter       int   `gorm:"not null;default:0"`
	RejectedBySecurityGate int   `gorm:"not null;default:0"`
	BelowThreshold         int   `gorm:"not null;default:0"`
	Notified               int   `gorm:"not null;default:0"`
	AlreadyNotifiedSkipped int   `gorm:"not null;default:0"`
	Errors                 int   `gorm:"not null;default:0"`
	CreatedTS              int64 `gorm:"not null"`
}

func (ScanRecord) TableName() string {
	return "scan_records"
}

// BeforeCreate hook for timestamps
func (a *AppState) BeforeCreate(tx *gorm.DB) error {
	if a.UpdatedTS == 0 {
		a.UpdatedTS = time.Now().Unix()
	}
	return nil
}

func (n *NotifiedToken) BeforeCreate(tx *gorm.DB) error {
	if n.CreatedTS == 0 {
		n.CreatedTS = time.Now().Unix()
	}
	if n.NotifiedTS == 0 {
		n.NotifiedTS = n.CreatedTS
	}
	return nil
}

func (s *ScanRecord) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedTS == 0 {
		s.CreatedTS = time.Now().Unix()
	}
	return nil
}
