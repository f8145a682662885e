package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletTransactionType marks the direction of a wallet movement.
type WalletTransactionType string

const (
	WalletDebit  WalletTransactionType = "debit"
	WalletCredit WalletTransactionType = "credit"
)

// WalletTransaction is an append-only wallet ledger row. Amount is signed:
// debits are negative.
type WalletTransaction struct {
	BaseModel
	UserID       uuid.UUID             `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount       decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"amount"`
	Type         WalletTransactionType `gorm:"type:varchar(8);not null" json:"type"`
	Description  string                `json:"description"`
	OrderID      *uuid.UUID            `gorm:"type:uuid;index" json:"order_id"`
	BalanceAfter decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"balance_after"`
}
