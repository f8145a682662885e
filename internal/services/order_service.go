package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/geo"
	"github.com/example/quickcart/internal/inventory"
	"github.com/example/quickcart/internal/models"
	"github.com/example/quickcart/internal/notify"
	"github.com/example/quickcart/internal/wallet"
)

// CartLine is one requested product in a checkout.
type CartLine struct {
	ProductID    uuid.UUID           `json:"product_id"`
	Quantity     int                 `json:"quantity"`
	Price        decimal.Decimal     `json:"price"`
	Substitution models.Substitution `json:"substitution"`
}

// PlaceOrderInput is everything checkout needs.
type PlaceOrderInput struct {
	UserID        uuid.UUID
	Items         []CartLine
	AddressID     uuid.UUID
	PaymentMethod models.PaymentMethod
	TotalPrice    decimal.Decimal
	CouponCode    string
}

// Actor is the authenticated caller of an order operation.
type Actor struct {
	UserID uuid.UUID
	Role   models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

func (a Actor) owns(o *models.Order) bool { return a.UserID == o.UserID }

// OrderOptions tunes checkout policy.
type OrderOptions struct {
	DefaultWarehouseID string
	StrictCoupons      bool
}

// Event payloads.
type (
	NewOrderPayload struct {
		ID         uuid.UUID       `json:"id"`
		TotalPrice decimal.Decimal `json:"total_price"`
	}
	OrderCancelledPayload struct {
		ID uuid.UUID `json:"id"`
	}
	StatusPayload struct {
		ID     uuid.UUID          `json:"id"`
		Status models.OrderStatus `json:"status"`
	}
)

// OrderService runs order placement, cancellation and the status lifecycle.
// Every mutation happens in one database transaction; events are published
// after commit and never fail the operation.
type OrderService struct {
	db        *gorm.DB
	stock     *inventory.Ledger
	wallet    *wallet.Ledger
	publisher notify.Publisher
	log       *zap.Logger
	opts      OrderOptions
	now       func() time.Time
}

func NewOrderService(db *gorm.DB, publisher notify.Publisher, log *zap.Logger, opts OrderOptions) *OrderService {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &OrderService{
		db:        db,
		stock:     inventory.NewLedger(db),
		wallet:    wallet.NewLedger(db),
		publisher: publisher,
		log:       log,
		opts:      opts,
		now:       time.Now,
	}
}

func validatePlaceOrder(in PlaceOrderInput) error {
	if len(in.Items) == 0 {
		return apperrors.Validation("Cart is empty")
	}
	if in.AddressID == uuid.Nil {
		return apperrors.Validation("Delivery address is required")
	}
	for _, line := range in.Items {
		if line.ProductID == uuid.Nil {
			return apperrors.Validation("Product is required for every cart item")
		}
		if line.Quantity <= 0 {
			return apperrors.Validation("Quantity must be positive")
		}
		if line.Substitution != "" && line.Substitution != models.SubstitutionRefund && line.Substitution != models.SubstitutionReplace {
			return apperrors.Validation("Invalid substitution preference")
		}
	}
	if !in.PaymentMethod.IsValid() {
		return apperrors.Validation("Invalid payment method")
	}
	if in.TotalPrice.IsNegative() {
		return apperrors.Validation("Total price must not be negative")
	}
	return nil
}

func outOfStock(name string) error {
	return apperrors.Newf(apperrors.CodeBusinessRule, "Product %q is out of stock at your nearest store", name)
}

// PlaceOrder routes the cart to the nearest dark store, reserves stock,
// takes wallet payment and records the order, all or nothing.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        in.UserID,
		AddressID:     in.AddressID,
		PaymentMethod: in.PaymentMethod,
		Status:        models.StatusPending,
		TotalPrice:    in.TotalPrice,
	}
	order.ID = uuid.New()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.First(&address, "id = ? AND user_id = ?", in.AddressID, in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("address")
			}
			return apperrors.Wrap(apperrors.CodeInternal, err, "load address")
		}

		warehouse, err := s.selectWarehouse(tx, &address)
		if err != nil {
			return err
		}
		order.WarehouseID = warehouse.ID

		products, err := loadProducts(tx, in.Items)
		if err != nil {
			return err
		}

		coupon, err := s.resolveCoupon(tx, in.CouponCode)
		if err != nil {
			return err
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}
		if due := amountDue(in.Items, products, coupon); in.TotalPrice.LessThan(due) {
			return apperrors.Newf(apperrors.CodeValidation, "Order total %s is below the amount due %s", in.TotalPrice.StringFixed(2), due.StringFixed(2))
		}

		stock := s.stock.WithTx(tx)
		for _, line := range in.Items {
			ok, err := stock.CheckAvailable(ctx, line.ProductID, warehouse.ID, line.Quantity)
			if err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "check stock")
			}
			if !ok {
				return outOfStock(products[line.ProductID].Name)
			}
		}

		if in.PaymentMethod == models.PaymentWallet && in.TotalPrice.IsPositive() {
			_, err := s.wallet.WithTx(tx).Debit(ctx, in.UserID, in.TotalPrice, "Payment for order", &order.ID)
			if errors.Is(err, wallet.ErrInsufficientBalance) {
				return apperrors.New(apperrors.CodeBusinessRule, "Insufficient wallet balance")
			}
			if errors.Is(err, wallet.ErrUserNotFound) {
				return apperrors.NotFound("user")
			}
			if err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "debit wallet")
			}
		}

		if err := tx.Omit("Items", "Delivery").Create(order).Error; err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "create order")
		}
		delivery := &models.Delivery{OrderID: order.ID, Status: models.DeliveryStatusFor(order.Status)}
		if err := tx.Create(delivery).Error; err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "create delivery")
		}
		order.Delivery = delivery

		for _, line := range in.Items {
			product := products[line.ProductID]
			substitution := line.Substitution
			if substitution == "" {
				substitution = models.SubstitutionRefund
			}
			item := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				Price:        product.Price,
				Substitution: substitution,
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "create order item")
			}
			if err := stock.Decrement(ctx, line.ProductID, warehouse.ID, line.Quantity); err != nil {
				if errors.Is(err, inventory.ErrInsufficientStock) {
					return outOfStock(product.Name)
				}
				return apperrors.Wrap(apperrors.CodeInternal, err, "decrement stock")
			}
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("warehouse_id", order.WarehouseID.String()),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("total", order.TotalPrice.String()),
	)
	s.publish(ctx, notify.Event{
		Name:    notify.EventNewOrder,
		Payload: NewOrderPayload{ID: order.ID, TotalPrice: order.TotalPrice},
	})
	return order, nil
}

func (s *OrderService) selectWarehouse(tx *gorm.DB, address *models.Address) (*models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := tx.Order("created_at asc").Find(&warehouses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load warehouses")
	}

	sites := make([]geo.Site, 0, len(warehouses))
	for _, w := range warehouses {
		sites = append(sites, w.Site())
	}

	sel, err := geo.SelectNearest(address.Point(), sites, s.opts.DefaultWarehouseID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBusinessRule, err, "No warehouse available")
	}

	for i := range warehouses {
		if warehouses[i].ID.String() == sel.ID {
			if sel.Fallback {
				s.log.Debug("address has no coordinates, using default warehouse", zap.String("warehouse_id", sel.ID))
			}
			return &warehouses[i], nil
		}
	}
	return nil, apperrors.New(apperrors.CodeBusinessRule, "No warehouse available")
}

// amountDue is the catalog subtotal less the coupon discount. A coupon whose
// minimum order is not met grants nothing.
func amountDue(lines []CartLine, products map[uuid.UUID]models.Product, coupon *models.Coupon) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(products[line.ProductID].Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if coupon == nil || subtotal.LessThan(coupon.MinOrder) {
		return subtotal
	}
	return subtotal.Sub(coupon.DiscountFor(subtotal))
}

func loadProducts(tx *gorm.DB, lines []CartLine) (map[uuid.UUID]models.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load products")
	}

	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, apperrors.NotFound("product")
		}
	}
	return byID, nil
}

func (s *OrderService) resolveCoupon(tx *gorm.DB, code string) (*models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	var coupon models.Coupon
	err := tx.Where("code = ? AND is_active = ?", code, true).First(&coupon).Error
	if err == nil {
		return &coupon, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load coupon")
	}

	if s.opts.StrictCoupons {
		return nil, apperrors.Validation("Invalid coupon code")
	}
	s.log.Warn("ignoring unknown coupon code at checkout", zap.String("code", code))
	return nil, nil
}

// CancelOrder moves a pre-dispatch order to cancelled, restores its stock and
// refunds prepaid orders to the wallet.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	order, err := s.findOrder(s.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}
	if !actor.owns(order) && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Not authorized to cancel this order")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cancel := models.Transitions[models.ActionCancel]
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", orderID, cancel.From).
			Update("status", cancel.To)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.CodeInternal, res.Error, "cancel order")
		}
		if res.RowsAffected == 0 {
			current, err := s.findOrder(tx, orderID)
			if err != nil {
				return err
			}
			return apperrors.Newf(apperrors.CodeStateConflict, "Cannot cancel order that is %s", current.Status)
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "load order items")
		}
		stock := s.stock.WithTx(tx)
		for _, item := range items {
			if err := stock.Increment(ctx, item.ProductID, order.WarehouseID, item.Quantity); err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "restore stock")
			}
		}

		if order.PaymentMethod.Refundable() && order.TotalPrice.IsPositive() {
			description := fmt.Sprintf("Refund for Order #%s", order.ShortID())
			if order.PaymentMethod == models.PaymentUPI {
				description += " (UPI Reversal)"
			}
			if _, err := s.wallet.WithTx(tx).Credit(ctx, order.UserID, order.TotalPrice, description, &order.ID); err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "refund wallet")
			}
		}

		return syncDelivery(tx, orderID, cancel.To, nil)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("actor", actor.UserID.String()),
	)
	s.publish(ctx, notify.Event{Name: notify.EventOrderCancelled, Payload: OrderCancelledPayload{ID: orderID}})
	s.publishStatus(ctx, orderID, models.StatusCancelled)

	return s.findOrder(s.db.WithContext(ctx), orderID)
}

// UpdateStatus is the admin override. Any known status may be written except
// that cancelling goes through CancelOrder so stock and wallet stay in step.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus, actor Actor) (*models.Order, error) {
	if !status.IsValid() {
		return nil, apperrors.Newf(apperrors.CodeValidation, "Invalid status %q", status)
	}
	if status == models.StatusCancelled {
		return s.CancelOrder(ctx, orderID, actor)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.findOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status == models.StatusCancelled {
			return apperrors.New(apperrors.CodeStateConflict, "Cannot change status of a cancelled order")
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error; err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "update status")
		}
		return syncDelivery(tx, orderID, status, s.deliveryTimestamps(status))
	})
	if err != nil {
		return nil, err
	}

	s.publishStatus(ctx, orderID, status)
	if status == models.StatusReadyForPickup {
		s.publish(ctx, notify.Event{Name: notify.EventDriverOrderReady, Payload: StatusPayload{ID: orderID, Status: status}})
	}
	return s.findOrder(s.db.WithContext(ctx), orderID)
}

// ConfirmOrder marks a pending order as paid and confirmed.
func (s *OrderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	order, err := s.findOrder(s.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}
	if !actor.owns(order) && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Not authorized to update this order")
	}
	return s.advance(ctx, orderID, models.ActionConfirm, nil)
}

// StartPacking claims an order for packing.
func (s *OrderService) StartPacking(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.advance(ctx, orderID, models.ActionStartPacking, nil)
}

// MarkReady hands a packed order over to drivers.
func (s *OrderService) MarkReady(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.advance(ctx, orderID, models.ActionMarkReady, nil)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, notify.Event{Name: notify.EventDriverOrderReady, Payload: StatusPayload{ID: orderID, Status: order.Status}})
	return order, nil
}

// AcceptDelivery assigns the driver and dispatches the order.
func (s *OrderService) AcceptDelivery(ctx context.Context, orderID, driverID uuid.UUID) (*models.Order, error) {
	now := s.now()
	return s.advance(ctx, orderID, models.ActionDispatch, map[string]any{
		"driver_id":    driverID,
		"picked_up_at": now,
	})
}

// CompleteDelivery marks the order delivered. Only the assigned driver, or an
// admin, may complete it.
func (s *OrderService) CompleteDelivery(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	var delivery models.Delivery
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&delivery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("delivery")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load delivery")
	}
	if !actor.IsAdmin() && (delivery.DriverID == nil || *delivery.DriverID != actor.UserID) {
		return nil, apperrors.Forbidden("This delivery is assigned to another driver")
	}

	return s.advance(ctx, orderID, models.ActionDeliver, map[string]any{"delivered_at": s.now()})
}

// advance applies one transition of the state machine as a compare-and-set
// on the order status, then mirrors it onto the delivery.
func (s *OrderService) advance(ctx context.Context, orderID uuid.UUID, action models.OrderAction, deliveryFields map[string]any) (*models.Order, error) {
	t, ok := models.Transitions[action]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeInternal, "unknown action %s", action)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", orderID, t.From).
			Update("status", t.To)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.CodeInternal, res.Error, "update status")
		}
		if res.RowsAffected == 0 {
			current, err := s.findOrder(tx, orderID)
			if err != nil {
				return err
			}
			return apperrors.Newf(apperrors.CodeStateConflict, "Cannot %s order that is %s",
				strings.ReplaceAll(string(action), "_", " "), current.Status)
		}
		return syncDelivery(tx, orderID, t.To, deliveryFields)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("action", string(action)),
		zap.String("status", string(t.To)),
	)
	s.publishStatus(ctx, orderID, t.To)
	return s.findOrder(s.db.WithContext(ctx), orderID)
}

func (s *OrderService) deliveryTimestamps(status models.OrderStatus) map[string]any {
	switch status {
	case models.StatusOutForDelivery:
		return map[string]any{"picked_up_at": s.now()}
	case models.StatusDelivered:
		return map[string]any{"delivered_at": s.now()}
	}
	return nil
}

// syncDelivery writes the delivery projection of status plus any extra
// columns, creating the row for orders that predate it.
func syncDelivery(tx *gorm.DB, orderID uuid.UUID, status models.OrderStatus, fields map[string]any) error {
	updates := map[string]any{"status": models.DeliveryStatusFor(status)}
	for k, v := range fields {
		updates[k] = v
	}

	res := tx.Model(&models.Delivery{}).Where("order_id = ?", orderID).Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.CodeInternal, res.Error, "update delivery")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	delivery := models.Delivery{OrderID: orderID, Status: models.DeliveryStatusFor(status)}
	if err := tx.Create(&delivery).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "create delivery")
	}
	if len(fields) == 0 {
		return nil
	}
	if err := tx.Model(&delivery).Updates(fields).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "update delivery")
	}
	return nil
}

// GetOrder returns an order with its relations. Only the owner or an admin
// may read it.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("User").
		Preload("Address").
		Preload("Warehouse").
		Preload("Coupon").
		Preload("Delivery.Driver").
		First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("order")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load order")
	}
	if !actor.owns(&order) && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Not authorized to view this order")
	}
	return &order, nil
}

// ListForUser returns a customer's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	return listOrders(q, limit, offset)
}

// ListAll returns every order, optionally filtered by status.
func (s *OrderService) ListAll(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return listOrders(q.Preload("User"), limit, offset)
}

func listOrders(q *gorm.DB, limit, offset int) ([]models.Order, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeInternal, err, "count orders")
	}

	var orders []models.Order
	err := q.Preload("Items.Product").
		Preload("Delivery").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeInternal, err, "list orders")
	}
	return orders, total, nil
}

// OrdersToPack is the packer queue: confirmed orders and those being packed,
// oldest first. Pending orders stay out until they are confirmed.
func (s *OrderService) OrdersToPack(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Address").
		Where("status IN ?", []models.OrderStatus{models.StatusConfirmed, models.StatusPacking}).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "list packer orders")
	}
	return orders, nil
}

// AvailableForPickup lists orders waiting for a driver.
func (s *OrderService) AvailableForPickup(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Address").
		Preload("Warehouse").
		Preload("Items.Product").
		Where("status = ?", models.StatusReadyForPickup).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "list available orders")
	}
	return orders, nil
}

// MyDeliveries lists the orders assigned to a driver.
func (s *OrderService) MyDeliveries(ctx context.Context, driverID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Joins("JOIN deliveries ON deliveries.order_id = orders.id").
		Where("deliveries.driver_id = ?", driverID).
		Preload("Address").
		Preload("Delivery").
		Preload("Items.Product").
		Order("orders.updated_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "list deliveries")
	}
	return orders, nil
}

func (s *OrderService) findOrder(db *gorm.DB, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").Preload("Delivery").First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("order")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load order")
	}
	return &order, nil
}

func (s *OrderService) publishStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) {
	s.publish(ctx, notify.Event{
		Name:    notify.EventOrderStatusUpdated,
		Room:    notify.OrderRoom(orderID),
		Payload: StatusPayload{ID: orderID, Status: status},
	})
}

func (s *OrderService) publish(ctx context.Context, ev notify.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("failed to publish event", zap.String("event", ev.Name), zap.Error(err))
	}
}
