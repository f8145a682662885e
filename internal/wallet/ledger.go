// Package wallet maintains the stored-value balance and its transaction log.
package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/models"
)

var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrUserNotFound        = errors.New("user not found")
)

// Ledger moves money in and out of user wallets. The cached balance on the
// user row only changes together with an inserted WalletTransaction, so
// callers must run it inside a transaction via WithTx or rely on the
// transaction each method opens for itself.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger bound to tx.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

// Debit takes amount from the user's wallet.
func (l *Ledger) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, description string, orderID *uuid.UUID) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var entry *models.WalletTransaction
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND wallet_balance >= ?", userID, amount).
			Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := userExists(tx, userID); err != nil {
				return err
			}
			return ErrInsufficientBalance
		}

		var err error
		entry, err = appendEntry(tx, userID, amount.Neg(), models.WalletDebit, description, orderID)
		return err
	})
	return entry, err
}

// Credit adds amount to the user's wallet.
func (l *Ledger) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, description string, orderID *uuid.UUID) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var entry *models.WalletTransaction
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		var err error
		entry, err = appendEntry(tx, userID, amount, models.WalletCredit, description, orderID)
		return err
	})
	return entry, err
}

// Balance returns the cached balance.
func (l *Ledger) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return balanceOf(l.db.WithContext(ctx), userID)
}

// History lists the user's transactions, newest first.
func (l *Ledger) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.WalletTransaction, int64, error) {
	q := l.db.WithContext(ctx).Model(&models.WalletTransaction{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.WalletTransaction
	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func appendEntry(tx *gorm.DB, userID uuid.UUID, signed decimal.Decimal, kind models.WalletTransactionType, description string, orderID *uuid.UUID) (*models.WalletTransaction, error) {
	balance, err := balanceOf(tx, userID)
	if err != nil {
		return nil, err
	}

	entry := &models.WalletTransaction{
		UserID:       userID,
		Amount:       signed,
		Type:         kind,
		Description:  description,
		OrderID:      orderID,
		BalanceAfter: balance,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func balanceOf(db *gorm.DB, userID uuid.UUID) (decimal.Decimal, error) {
	var user models.User
	err := db.Select("id", "wallet_balance").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, ErrUserNotFound
	}
	return user.WalletBalance, err
}

func userExists(db *gorm.DB, userID uuid.UUID) error {
	_, err := balanceOf(db, userID)
	return err
}
