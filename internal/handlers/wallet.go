package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/utils"
	"github.com/example/quickcart/internal/wallet"
)

// WalletHandler exposes the wallet balance and admin top-ups.
type WalletHandler struct {
	ledger *wallet.Ledger
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(ledger *wallet.Ledger) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// GetWallet returns the caller's balance and transaction history.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	balance, err := h.ledger.Balance(ctx, actor.UserID)
	if err != nil {
		return walletError(err)
	}

	pg := utils.ParsePagination(c)
	history, total, err := h.ledger.History(ctx, actor.UserID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"balance":      balance,
			"transactions": history,
		},
		"pagination": pg.Meta(total),
	})
}

type topUpRequest struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// TopUp credits a user's wallet.
func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	var req topUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return apperrors.Validation("invalid user_id")
	}
	if req.Description == "" {
		req.Description = "Wallet top-up"
	}

	entry, err := h.ledger.Credit(c.UserContext(), userID, req.Amount, req.Description, nil)
	if err != nil {
		return walletError(err)
	}
	return respondCreated(c, entry)
}

func walletError(err error) error {
	switch {
	case errors.Is(err, wallet.ErrInvalidAmount):
		return apperrors.Validation("Amount must be greater than zero")
	case errors.Is(err, wallet.ErrUserNotFound):
		return apperrors.NotFound("User")
	case errors.Is(err, wallet.ErrInsufficientBalance):
		return apperrors.New(apperrors.CodeBusinessRule, "Insufficient wallet balance")
	}
	return err
}
