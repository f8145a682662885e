package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/quickcart/internal/notify"
)

// DefaultTelegramAPI is the public Bot API endpoint.
const DefaultTelegramAPI = "https://api.telegram.org"

const (
	telegramTimeout     = 10 * time.Second
	telegramMaxInFlight = 16
)

// TelegramService sends admin chat notifications. It is a notify.Publisher
// that reacts to new and cancelled orders and ignores everything else.
// Publish hands the message to a background send and returns immediately.
type TelegramService struct {
	botToken    string
	adminChatID string
	baseURL     string
	client      *http.Client
	log         *zap.Logger

	slots chan struct{}
	wg    sync.WaitGroup
}

func NewTelegramService(botToken, adminChatID, baseURL string, log *zap.Logger) *TelegramService {
	if baseURL == "" {
		baseURL = DefaultTelegramAPI
	}
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{Timeout: telegramTimeout},
		log:         log,
		slots:       make(chan struct{}, telegramMaxInFlight),
	}
}

// Wait blocks until every background send has finished.
func (s *TelegramService) Wait() {
	s.wg.Wait()
}

// Enabled reports whether both the token and the admin chat are configured.
func (s *TelegramService) Enabled() bool {
	return s.botToken != "" && s.adminChatID != ""
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends an HTML message to chatID.
func (s *TelegramService) SendMessage(ctx context.Context, chatID, text string) error {
	if s.botToken == "" {
		s.log.Debug("telegram bot token not configured")
		return nil
	}

	body, err := json.Marshal(telegramMessage{ChatID: chatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if s.adminChatID == "" {
		s.log.Debug("telegram admin chat not configured")
		return nil
	}
	return s.SendMessage(ctx, s.adminChatID, text)
}

// FormatPrice renders an amount in rupees with thousand separators.
func FormatPrice(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// orderEventPayload is the common shape of order event payloads.
type orderEventPayload struct {
	ID         string          `json:"id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Publish implements notify.Publisher.
func (s *TelegramService) Publish(ctx context.Context, ev notify.Event) error {
	var text string
	switch ev.Name {
	case notify.EventNewOrder, notify.EventOrderCancelled:
	default:
		return nil
	}

	var p orderEventPayload
	raw, err := json.Marshal(ev.Payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}

	if ev.Name == notify.EventNewOrder {
		text = fmt.Sprintf("<b>🛒 New order</b>\n<b>Order:</b> #%s\n<b>Total:</b> %s", shortRef(p.ID), FormatPrice(p.TotalPrice))
	} else {
		text = fmt.Sprintf("<b>❌ Order cancelled</b>\n<b>Order:</b> #%s", shortRef(p.ID))
	}

	if !s.Enabled() {
		return nil
	}
	select {
	case s.slots <- struct{}{}:
	default:
		s.log.Warn("telegram queue full, dropping notification", zap.String("event", ev.Name), zap.String("order", p.ID))
		return nil
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() { <-s.slots }()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telegramTimeout)
		defer cancel()
		if err := s.SendToAdmin(sendCtx, text); err != nil {
			s.log.Warn("telegram notification failed", zap.String("event", ev.Name), zap.String("order", p.ID), zap.Error(err))
		}
	}()
	return nil
}

func shortRef(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
