package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/auth"
	"shopfront/internal/coupon"
	"shopfront/internal/model"
	"shopfront/internal/notify"
	"shopfront/internal/pricing"
	"shopfront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repositories groups the stores the order service works across.
type Repositories struct {
	Orders    repository.OrderRepository
	Carts     repository.CartRepository
	Products  repository.ProductRepository
	Addresses repository.AddressRepository
	Rates     repository.RateRepository
	Coupons   repository.CouponRepository
	Reviews   repository.ReviewRepository
	Users     repository.UserRepository
	Outbox    repository.OutboxRepository
}

// EventPublisher hands a committed outbox record to the notification pipeline.
type EventPublisher interface {
	DispatchAsync(record model.OutboxRecord)
}

// OutcomeRecorder counts checkout results.
type OutcomeRecorder interface {
	CheckoutOutcome(outcome string)
}

// orderService implements OrderService.
type orderService struct {
	repos     Repositories
	validator coupon.Validator
	publisher EventPublisher
	outcomes  OutcomeRecorder
	topic     string
	now       func() time.Time
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	repos Repositories,
	validator coupon.Validator,
	publisher EventPublisher,
	outcomes OutcomeRecorder,
	topic string,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		repos:     repos,
		validator: validator,
		publisher: publisher,
		outcomes:  outcomes,
		topic:     topic,
		now:       time.Now,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// priced holds the amounts computed for a checkout.
type priced struct {
	subtotal decimal.Decimal
	shipping decimal.Decimal
	tax      decimal.Decimal
	discount decimal.Decimal
	total    decimal.Decimal
	coupon   *model.Coupon
	warning  string
}

// Checkout converts the caller's active cart into an order.
func (s *orderService) Checkout(ctx context.Context, caller auth.Principal, req model.CheckoutRequest) (*model.OrderResponse, error) {
	resp, err := s.checkout(ctx, caller, req)
	s.recordOutcome(err)
	return resp, err
}

func (s *orderService) checkout(ctx context.Context, caller auth.Principal, req model.CheckoutRequest) (resp *model.OrderResponse, err error) {
	logger := s.logger.With().Str("user_id", caller.UserID.String()).Logger()

	address, err := s.repos.Addresses.CheckoutAddress(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout address: %w", err)
	}
	if address == nil {
		logger.Debug().Msg("checkout without address")
		return nil, model.ErrNoAddress
	}

	cart, err := s.repos.Carts.GetActive(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		logger.Debug().Msg("checkout with empty cart")
		return nil, model.ErrCartEmpty
	}

	tx, err := s.repos.Orders.BeginTx(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	cart, err = s.repos.Carts.LockActive(ctx, tx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartEmpty
	}

	lines, err := s.repos.Carts.LockLines(ctx, tx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, model.ErrCartEmpty
	}

	now := s.now()

	amounts, err := s.price(ctx, tx, caller, address, lines, req.CouponCode, now)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:           uuid.New(),
		UserID:       caller.UserID,
		AddressID:    &address.ID,
		Status:       model.OrderStatusPending,
		Total:        amounts.total,
		Discount:     amounts.discount,
		Tax:          amounts.tax,
		Shipping:     amounts.shipping,
		CheckedOutAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if amounts.coupon != nil {
		order.CouponID = &amounts.coupon.ID
	}

	if err = s.repos.Orders.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		productID := line.ProductID
		items[i] = model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   &productID,
			ProductName: line.ProductName,
			Price:       line.CurrentPrice,
			Quantity:    line.Quantity,
			CreatedAt:   now,
		}
	}

	if err = s.repos.Orders.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	if err = s.repos.Products.DecrementStock(ctx, tx, lines); err != nil {
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	if amounts.coupon != nil {
		usage := &model.CouponUsage{
			ID:       uuid.New(),
			CouponID: amounts.coupon.ID,
			UserID:   caller.UserID,
			OrderID:  order.ID,
			UsedAt:   now,
		}
		if err = s.repos.Coupons.CreateUsage(ctx, tx, usage); err != nil {
			return nil, fmt.Errorf("failed to checkout: %w", err)
		}
	}

	if err = s.repos.Carts.CloseCheckedOut(ctx, tx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(items)).
		Str("total", order.Total.StringFixed(2)).
		Msg("checkout completed")

	return &model.OrderResponse{
		Order:           *order,
		Address:         address,
		Coupon:          amounts.coupon,
		Items:           items,
		Reviews:         []model.OrderReview{},
		ShippingWarning: amounts.warning,
	}, nil
}

// price computes subtotal, shipping, tax and the coupon discount for the locked lines.
func (s *orderService) price(
	ctx context.Context,
	tx pgx.Tx,
	caller auth.Principal,
	address *model.Address,
	lines []model.CartLine,
	code string,
	now time.Time,
) (*priced, error) {
	p := &priced{subtotal: pricing.Subtotal(lines), discount: decimal.Zero}

	methods, err := s.repos.Rates.ShippingMethods(ctx, address.Country)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve shipping: %w", err)
	}
	fee, ok := pricing.Shipping(methods, p.subtotal)
	if !ok {
		s.logger.Warn().Str("country", address.Country).Msg("no shipping method for country")
		p.warning = pricing.ShippingUnavailableWarning
	}
	p.shipping = fee

	rate, err := s.repos.Rates.TaxRate(ctx, address.Country, now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tax: %w", err)
	}
	p.tax = pricing.Tax(p.subtotal, rate)

	code = strings.TrimSpace(code)
	if code != "" {
		c, err := s.repos.Coupons.GetByCodeForUpdate(ctx, tx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to get coupon: %w", err)
		}
		if c == nil {
			s.logger.Debug().Str("coupon_code", code).Msg("unknown coupon code")
			return nil, model.ErrInvalidCoupon
		}

		usage, err := s.repos.Coupons.CountUsage(ctx, tx, c.ID, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to count coupon usage: %w", err)
		}

		if err := s.validator.Validate(c, usage, p.subtotal, now); err != nil {
			s.logger.Debug().Err(err).Str("coupon_code", code).Msg("coupon rejected")
			return nil, err
		}

		p.discount = s.validator.Discount(c, p.subtotal)
		p.coupon = c
	}

	p.total = pricing.Total(p.subtotal, p.shipping, p.tax, p.discount)
	return p, nil
}

func (s *orderService) recordOutcome(err error) {
	if s.outcomes == nil {
		return
	}
	var domainErr *model.DomainError
	switch {
	case err == nil:
		s.outcomes.CheckoutOutcome("success")
	case errors.As(err, &domainErr):
		s.outcomes.CheckoutOutcome(strings.ToLower(domainErr.Code))
	default:
		s.outcomes.CheckoutOutcome("error")
	}
}

// List returns orders newest first. Callers without order management rights see only their own.
func (s *orderService) List(ctx context.Context, caller auth.Principal, filter model.OrderFilter) ([]model.Order, error) {
	if !caller.CanManageOrders() {
		userID := caller.UserID
		filter.UserID = &userID
	}
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset, 20)

	orders, err := s.repos.Orders.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves an order with items, reviews, address and coupon.
// Orders of other users are reported as not found unless the caller manages orders.
func (s *orderService) GetByID(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.OrderResponse, error) {
	order, err := s.repos.Orders.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || (order.UserID != caller.UserID && !caller.CanManageOrders()) {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	resp := &model.OrderResponse{Order: *order}

	if resp.Items, err = s.repos.Orders.Items(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	if resp.Reviews, err = s.repos.Reviews.ListByOrder(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get order reviews: %w", err)
	}
	if order.AddressID != nil {
		if resp.Address, err = s.repos.Addresses.GetByID(ctx, *order.AddressID); err != nil {
			return nil, fmt.Errorf("failed to get order address: %w", err)
		}
	}
	if order.CouponID != nil {
		if resp.Coupon, err = s.repos.Coupons.GetByID(ctx, *order.CouponID); err != nil {
			return nil, fmt.Errorf("failed to get order coupon: %w", err)
		}
	}

	if resp.Items == nil {
		resp.Items = []model.OrderItem{}
	}
	if resp.Reviews == nil {
		resp.Reviews = []model.OrderReview{}
	}
	return resp, nil
}

// UpdateStatus applies a status transition together with tracking number and admin note.
// A status change queues a customer notification in the same transaction.
func (s *orderService) UpdateStatus(ctx context.Context, caller auth.Principal, id uuid.UUID, req model.StatusUpdateRequest) (msg string, err error) {
	if !caller.CanManageOrders() {
		return "", model.ErrForbidden
	}
	if req.Status != nil && !req.Status.Valid() {
		return "", model.ErrInvalidTransition
	}

	logger := s.logger.With().Str("order_id", id.String()).Logger()

	tx, err := s.repos.Orders.BeginTx(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to begin transaction")
		return "", fmt.Errorf("failed to update order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.repos.Orders.LockByID(ctx, tx, id)
	if err != nil {
		return "", fmt.Errorf("failed to lock order: %w", err)
	}
	if order == nil {
		return "", model.ErrOrderNotFound
	}

	previous := order.Status
	if req.Status != nil {
		if !order.Status.CanTransition(*req.Status) {
			logger.Debug().
				Str("from", string(order.Status)).
				Str("to", string(*req.Status)).
				Msg("rejected status transition")
			return "", model.ErrInvalidTransition
		}
		order.Status = *req.Status
	}
	if req.TrackingNumber != nil {
		order.TrackingNumber = req.TrackingNumber
	}
	if req.AdminNote != nil {
		order.AdminNote = req.AdminNote
	}

	if err = s.repos.Orders.Update(ctx, tx, order); err != nil {
		return "", fmt.Errorf("failed to update order: %w", err)
	}

	var record *model.OutboxRecord
	if order.Status != previous {
		if record, err = s.queueNotification(ctx, tx, order); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to commit transaction")
		return "", fmt.Errorf("failed to update order: %w", err)
	}

	if record != nil && s.publisher != nil {
		s.publisher.DispatchAsync(*record)
	}

	if req.Status == nil {
		return "Order updated.", nil
	}

	logger.Info().
		Str("from", string(previous)).
		Str("to", string(order.Status)).
		Str("by", caller.UserID.String()).
		Msg("order status updated")

	return fmt.Sprintf("Status updated to %s.", order.Status), nil
}

// queueNotification writes the status email for the order's owner to the outbox.
func (s *orderService) queueNotification(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.OutboxRecord, error) {
	user, err := s.repos.Users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order owner: %w", err)
	}
	if user == nil {
		s.logger.Warn().Str("order_id", order.ID.String()).Msg("order owner missing, skipping notification")
		return nil, nil
	}

	record, err := notify.NewRecord(notify.Compose(order, user.Email, s.now()), s.topic)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Outbox.Insert(ctx, tx, record); err != nil {
		return nil, fmt.Errorf("failed to queue notification: %w", err)
	}
	return record, nil
}
