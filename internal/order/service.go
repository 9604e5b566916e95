package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/cache"
	"kebab-sayank-be/internal/cart"
	"kebab-sayank-be/internal/events"
	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/metrics"
	"kebab-sayank-be/internal/payment"
	"kebab-sayank-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds order number regeneration after a collision.
const maxNumberAttempts = 5

type Service interface {
	Create(ctx context.Context, sess *auth.Session, in CheckoutInput, c *cart.Cart) (*Order, error)
	// Checkout creates the order from the caller's stored cart and empties it.
	Checkout(ctx context.Context, sess *auth.Session, in CheckoutInput) (*Order, error)
	List(ctx context.Context, sess *auth.Session, filter ListFilter) ([]*Order, error)
	Get(ctx context.Context, sess *auth.Session, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, sess *auth.Session, id uuid.UUID, in EditInput) (*Order, error)
	Cancel(ctx context.Context, sess *auth.Session, id uuid.UUID) (*Order, error)
	ConfirmPayment(ctx context.Context, sess *auth.Session, id uuid.UUID) (*PaymentResult, error)
	MarkPrinted(ctx context.Context, sess *auth.Session, id uuid.UUID) (*Order, error)
	Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error
}

type service struct {
	repo      Repository
	carts     cart.Service
	cache     cache.Cache
	publisher events.Publisher

	numbers func() (int64, error)
	now     func() time.Time
}

func NewService(repo Repository, carts cart.Service, c cache.Cache, pub events.Publisher) Service {
	if c == nil {
		c = cache.Nop{}
	}
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &service{
		repo:      repo,
		carts:     carts,
		cache:     c,
		publisher: pub,
		numbers:   utils.GenerateOrderNumber,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, sess *auth.Session, in CheckoutInput, c *cart.Cart) (*Order, error) {
	if err := sess.Authorize(); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "CreateOrder").With(
		zap.String("user_id", sess.UserID.String()),
		zap.String("order_type", in.OrderType),
		zap.String("payment_method", in.PaymentMethod),
	)
	log.Info("CreateOrder started")

	// Replays resolve before validation; their cart is empty by then.
	idemKey := ""
	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		idemKey = fmt.Sprintf(cache.KeyIdemOrderCreate, sess.UserID.String()+":"+key)
		existing, err := s.claimIdempotencyKey(ctx, idemKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			log.Info("CreateOrder replayed", zap.String("order_id", existing.ID.String()))
			return existing, nil
		}
	}
	release := func() {
		if idemKey != "" {
			_ = s.cache.Del(ctx, idemKey)
		}
	}

	amount, err := ValidateCheckout(in, c)
	if err != nil {
		release()
		log.Info("CreateOrder rejected", zap.Error(err))
		return nil, err
	}

	status, err := s.initialStatus(sess, in.Status)
	if err != nil {
		release()
		return nil, err
	}

	o := s.buildOrder(sess, in, c, amount, status)

	if err := s.persist(ctx, o); err != nil {
		release()
		var conflict *StockConflictError
		if errors.As(err, &conflict) {
			metrics.StockConflicts.Inc()
		}
		log.Error("CreateOrder failed", zap.Error(err))
		return nil, err
	}

	if idemKey != "" {
		if err := s.cache.SetJSON(ctx, idemKey, o.ID.String(), cache.TTLIdempotency); err != nil {
			log.Warn("failed to record idempotency key", zap.Error(err))
		}
	}

	metrics.OrdersCreated.WithLabelValues(string(o.OrderType), string(o.PaymentMethod)).Inc()
	s.publish(ctx, events.EventOrderCreated, o, createdPayload(o))

	log.Info("CreateOrder success",
		zap.String("order_id", o.ID.String()),
		zap.Int64("order_number", o.OrderNumber),
		zap.Int64("total_price", o.TotalPrice),
	)
	return o, nil
}

// initialStatus lets an admin record a counter order as already completed.
// Customer orders always start pending.
func (s *service) initialStatus(sess *auth.Session, raw string) (Status, error) {
	if !sess.IsAdmin() || strings.TrimSpace(raw) == "" {
		return StatusPending, nil
	}
	status, ok := ParseStatus(raw)
	if !ok || status == StatusCancelled {
		return "", invalid("status", "Status pesanan tidak valid")
	}
	return status, nil
}

// claimIdempotencyKey returns the order already created under key, or nil
// when the caller now owns the key.
func (s *service) claimIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	claimed, err := s.cache.SetNX(ctx, key, "", cache.TTLIdempotency)
	if err != nil {
		logger.FromCtx(ctx).Warn("idempotency check unavailable", zap.Error(err))
		return nil, nil
	}
	if claimed {
		return nil, nil
	}

	var orderID string
	if found, _ := s.cache.GetJSON(ctx, key, &orderID); found {
		if id, err := uuid.Parse(orderID); err == nil {
			return s.repo.GetByID(ctx, id)
		}
	}
	return nil, ErrDuplicateSubmission
}

func (s *service) buildOrder(sess *auth.Session, in CheckoutInput, c *cart.Cart, amount int64, status Status) *Order {
	customerRef := sess.UserID
	if sess.IsAdmin() && in.CustomerRef != nil && *in.CustomerRef != uuid.Nil {
		customerRef = *in.CustomerRef
	}

	totalItems, totalPrice := c.Totals()

	o := &Order{
		ID:          uuid.New(),
		CustomerRef: customerRef,
		Customer: Customer{
			ID:      customerRef,
			Name:    strings.TrimSpace(in.CustomerName),
			Phone:   strings.TrimSpace(in.CustomerPhone),
			Address: strings.TrimSpace(in.CustomerAddress),
		},
		Cashier:       strings.TrimSpace(in.Cashier),
		OrderType:     OrderType(in.OrderType),
		TotalItems:    totalItems,
		TotalPrice:    totalPrice,
		PaymentMethod: PaymentMethod(in.PaymentMethod),
		PaymentAmount: amount,
		IncomeAmount:  amount,
		Status:        status,
		Products:      make([]OrderProduct, 0, len(c.Lines)),
	}

	if status == StatusCompleted {
		now := s.now()
		o.PrintedAt = &now
	}

	for _, l := range c.Lines {
		productID := l.ProductID
		o.Products = append(o.Products, OrderProduct{
			OrderID:      o.ID,
			ProductID:    &productID,
			ProductName:  l.ProductName,
			CategoryID:   l.CategoryID,
			CategoryName: l.CategoryName,
			UnitPrice:    l.UnitPrice,
			Quantity:     l.Quantity,
			Subtotal:     l.Subtotal,
		})
	}

	return o
}

// persist draws order numbers until the insert does not collide.
func (s *service) persist(ctx context.Context, o *Order) error {
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		number, err := s.numbers()
		if err != nil {
			return fmt.Errorf("generate order number: %w", err)
		}
		o.OrderNumber = number

		err = s.repo.CreateOrderTx(ctx, o)
		if !errors.Is(err, ErrOrderNumberTaken) {
			return err
		}
		logger.FromCtx(ctx).Warn("order number taken, retrying",
			zap.Int64("order_number", number),
			zap.Int("attempt", attempt),
		)
	}
	return ErrOrderNumberExhausted
}

func (s *service) Checkout(ctx context.Context, sess *auth.Session, in CheckoutInput) (*Order, error) {
	c, err := s.carts.Get(ctx, sess)
	if err != nil {
		return nil, err
	}

	o, err := s.Create(ctx, sess, in, c)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, sess); err != nil {
		logger.For(ctx, "service", "Checkout").Warn("failed to clear cart after checkout", zap.Error(err))
	}
	return o, nil
}

func (s *service) List(ctx context.Context, sess *auth.Session, filter ListFilter) ([]*Order, error) {
	if err := sess.Authorize(); err != nil {
		return nil, err
	}

	if !sess.IsAdmin() {
		own := sess.UserID
		filter.CustomerRef = &own
	}
	filter.Search = strings.TrimSpace(filter.Search)

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.For(ctx, "service", "ListOrders").Error("failed to list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// load fetches an order the session may see. Orders of other customers
// are reported as missing.
func (s *service) load(ctx context.Context, sess *auth.Session, id uuid.UUID) (*Order, error) {
	if err := sess.Authorize(); err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.Owns(o.CustomerRef) {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) Get(ctx context.Context, sess *auth.Session, id uuid.UUID) (*Order, error) {
	return s.load(ctx, sess, id)
}

func (s *service) UpdateStatus(ctx context.Context, sess *auth.Session, id uuid.UUID, in EditInput) (*Order, error) {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "UpdateOrderStatus").With(
		zap.String("order_id", id.String()),
		zap.String("status", in.Status),
	)

	to, err := validateEdit(in)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if from != to && !CanTransition(from, to) {
		log.Info("transition refused", zap.String("from", string(from)))
		return nil, ErrInvalidTransition
	}

	printedAt := in.PrintedAt
	if printedAt == nil && to == StatusCompleted && o.PrintedAt == nil {
		now := s.now()
		printedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, from, to, printedAt); err != nil {
		log.Error("failed to update status", zap.Error(err))
		return nil, err
	}

	o.Status = to
	if printedAt != nil {
		o.PrintedAt = printedAt
	}

	s.statusChanged(ctx, o, from)
	log.Info("UpdateOrderStatus success", zap.String("from", string(from)))
	return o, nil
}

func (s *service) Cancel(ctx context.Context, sess *auth.Session, id uuid.UUID) (*Order, error) {
	o, err := s.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, ErrNotPending
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusPending, StatusCancelled, nil); err != nil {
		logger.For(ctx, "service", "CancelOrder").Error("failed to cancel order", zap.Error(err))
		return nil, err
	}

	o.Status = StatusCancelled
	s.statusChanged(ctx, o, StatusPending)
	return o, nil
}

func (s *service) ConfirmPayment(ctx context.Context, sess *auth.Session, id uuid.UUID) (*PaymentResult, error) {
	o, err := s.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "ConfirmPayment").With(zap.String("order_id", id.String()))

	if o.Status != StatusPending {
		return nil, ErrNotPending
	}
	if o.PaymentAmount < o.TotalPrice {
		shortfall := o.TotalPrice - o.PaymentAmount
		return nil, &ValidationError{
			Field:     "paymentAmount",
			Message:   "Jumlah pembayaran kurang dari total harga. Kekurangan: Rp. " + utils.FormatThousands(shortfall),
			Shortfall: shortfall,
		}
	}

	if o.PrintedAt == nil {
		now := s.now()
		if err := s.repo.SetPrintedAt(ctx, id, now); err != nil {
			log.Error("failed to stamp printed_at", zap.Error(err))
			return nil, err
		}
		o.PrintedAt = &now
	}

	log.Info("ConfirmPayment success", zap.String("payment_method", string(o.PaymentMethod)))
	return &PaymentResult{
		Order:  o,
		Change: o.Change(),
		Instructions: payment.Instructions(
			string(o.PaymentMethod),
			payment.AmountVars(o.TotalPrice, o.OrderNumber),
		),
	}, nil
}

// MarkPrinted records the first time a receipt was produced.
func (s *service) MarkPrinted(ctx context.Context, sess *auth.Session, id uuid.UUID) (*Order, error) {
	o, err := s.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if o.Status == StatusCancelled {
		return nil, ErrInvalidTransition
	}
	if o.PrintedAt != nil {
		return o, nil
	}

	now := s.now()
	if err := s.repo.SetPrintedAt(ctx, id, now); err != nil {
		return nil, err
	}
	o.PrintedAt = &now
	return o, nil
}

func (s *service) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return err
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.For(ctx, "service", "DeleteOrder").Error("failed to delete order", zap.Error(err))
		return err
	}

	s.publish(ctx, events.EventOrderDeleted, o, events.OrderDeletedPayload{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
	})
	return nil
}

func (s *service) statusChanged(ctx context.Context, o *Order, from Status) {
	if from != o.Status {
		metrics.OrderStatusTransitions.WithLabelValues(string(from), string(o.Status)).Inc()
	}
	s.publish(ctx, events.EventOrderStatusChanged, o, events.OrderStatusChangedPayload{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		From:        string(from),
		To:          string(o.Status),
		PrintedAt:   o.PrintedAt,
	})
}

func createdPayload(o *Order) events.OrderCreatedPayload {
	lines := make([]events.OrderLine, 0, len(o.Products))
	for _, p := range o.Products {
		productID := ""
		if p.ProductID != nil {
			productID = p.ProductID.String()
		}
		lines = append(lines, events.OrderLine{
			ProductID: productID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}

	return events.OrderCreatedPayload{
		OrderID:       o.ID.String(),
		OrderNumber:   o.OrderNumber,
		CustomerRef:   o.CustomerRef.String(),
		OrderType:     string(o.OrderType),
		PaymentMethod: string(o.PaymentMethod),
		TotalItems:    o.TotalItems,
		TotalPrice:    o.TotalPrice,
		Lines:         lines,
	}
}

func (s *service) publish(ctx context.Context, eventType string, o *Order, payload any) {
	log := logger.FromCtx(ctx).With(zap.String("event_type", eventType), zap.String("order_id", o.ID.String()))

	env, err := events.NewEnvelope(eventType, o.ID.String(), logger.RequestIDFrom(ctx), payload)
	if err != nil {
		log.Error("failed to build event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, o.ID.String(), env); err != nil {
		log.Warn("failed to publish event", zap.Error(err))
	}
}
