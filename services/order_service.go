package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"stitchmart_server/database"
	"stitchmart_server/lib"
	"stitchmart_server/structs"
	"stitchmart_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// orderNumberAttempts bounds the retry loop on order number collisions.
// The keyspace is large enough that more than one retry is already rare.
const orderNumberAttempts = 5

type OrderService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	db             *database.DB
	productService *ProductService
	emailService   *EmailService
}

func NewOrderService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, productService *ProductService, emailService *EmailService) *OrderService {
	return &OrderService{
		logger:         logger,
		cfg:            cfg,
		db:             db,
		productService: productService,
		emailService:   emailService,
	}
}

// OrderView augments an order with its derived fields.
type OrderView struct {
	tables.Order
	IsPaid     bool `json:"is_paid"`
	TotalItems int  `json:"total_items"`
}

func toOrderView(order tables.Order) OrderView {
	return OrderView{
		Order:      order,
		IsPaid:     order.IsPaid(),
		TotalItems: order.TotalItems(),
	}
}

// CreateOrder places an order in a single transaction: stock is reserved
// per item through the guarded total_sold update, item snapshots are
// written and the order row is inserted. Any failure rolls everything
// back, so stock is reserved for all items or for none.
//
// The generated order number can collide with an existing one; the whole
// transaction is retried a bounded number of times on that conflict.
func (os *OrderService) CreateOrder(ctx context.Context, user *tables.User, req *structs.OrderRequest) (*OrderView, error) {
	startTime := time.Now()

	address, err := database.Query[tables.ShippingAddress](os.db).Where("user_id", user.Id).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if address == nil {
		return nil, fmt.Errorf("%w: shipping address required before ordering", lib.ErrValidation)
	}

	var created *tables.Order
	err = withConflictRetry(orderNumberAttempts, func(attempt int) error {
		var placeErr error
		created, placeErr = os.placeOrder(ctx, user, address, req)
		if errors.Is(placeErr, lib.ErrConflict) {
			os.logger.Warn("Order number collision, retrying",
				gecho.Field("attempt", attempt),
				gecho.Field("user_id", user.Id),
			)
		}
		return placeErr
	})
	if err != nil {
		os.logger.Error("Failed to place order after retries", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	os.logger.Info("Order placed",
		gecho.Field("order_id", created.Id),
		gecho.Field("order_number", created.OrderNumber),
		gecho.Field("user_id", user.Id),
		gecho.Field("total_price", created.TotalPrice),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)

	// Confirmation email off the request path
	go func(u tables.User, o tables.Order) {
		if err := os.emailService.SendOrderConfirmationEmail(&u, &o); err != nil {
			os.logger.Warn("Failed to send order confirmation", gecho.Field("error", err), gecho.Field("order_id", o.Id))
		}
	}(*user, *created)

	view := toOrderView(*created)
	return &view, nil
}

// withConflictRetry runs fn until it succeeds or returns a
// non-conflict error, bounded at attempts. The last conflict is
// returned when the budget runs out.
func withConflictRetry(attempts int, fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(attempt)
		if err == nil || !errors.Is(err, lib.ErrConflict) {
			return err
		}
	}
	return err
}

func (os *OrderService) placeOrder(ctx context.Context, user *tables.User, address *tables.ShippingAddress, req *structs.OrderRequest) (*tables.Order, error) {
	order := &tables.Order{
		Id:              uuid.New(),
		UserId:          user.Id,
		OrderNumber:     lib.GenerateOrderNumber(),
		ShippingAddress: *address,
		PaymentStatus:   tables.PaymentStatusNotPaid,
		Status:          tables.OrderStatusPending,
	}
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}
	if req.Currency != "" {
		order.Currency = req.Currency
	}

	err := database.Transaction(os.db, ctx, func(tx bun.Tx) error {
		var total uint64
		items := make([]tables.OrderItem, 0, len(req.Items))

		for _, itemReq := range req.Items {
			product := new(tables.Product)
			err := tx.NewSelect().Model(product).Where("id = ?", itemReq.ProductId).Scan(ctx)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return lib.ErrNotFound
				}
				return lib.MapPgError(err)
			}

			if err := os.productService.RecordSale(ctx, tx, product.Id, itemReq.Quantity); err != nil {
				return err
			}

			items = append(items, tables.OrderItem{
				Id:          uuid.New(),
				OrderId:     order.Id,
				ProductId:   product.Id,
				ProductName: product.Name,
				Quantity:    itemReq.Quantity,
				UnitPrice:   product.Price,
			})
			total += product.Price * uint64(itemReq.Quantity)
		}

		order.TotalPrice = total
		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns one order with its items. Access control is the
// caller's concern via the returned UserId.
func (os *OrderService) GetOrder(ctx context.Context, orderId uuid.UUID) (*OrderView, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("id", orderId).
		Relation("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	view := toOrderView(*order)
	return &view, nil
}

// OrderListOptions scopes and filters order listings.
type OrderListOptions struct {
	Page     int
	PageSize int

	// UserId filters to one user's orders; uuid.Nil lists everyone,
	// which only admin routes expose.
	UserId uuid.UUID

	Status tables.OrderStatus
}

func (os *OrderService) ListOrders(ctx context.Context, opts *OrderListOptions) ([]OrderView, database.Pagination, error) {
	query := database.Query[tables.Order](os.db).
		Relation("Items").
		OrderBy("created_at", database.DESC)

	if opts.UserId != uuid.Nil {
		query = query.Where("user_id", opts.UserId)
	}
	if opts.Status != "" {
		query = query.Where("status", opts.Status)
	}

	result, err := database.Paginate(query, ctx, opts.Page, opts.PageSize)
	if err != nil {
		return nil, database.Pagination{}, lib.MapPgError(err)
	}

	views := make([]OrderView, len(result.Data))
	for i := range result.Data {
		views[i] = toOrderView(result.Data[i])
	}
	return views, result.Pagination, nil
}

// orderStatusUpdates computes the column updates for an order update
// request. Status moves must follow the forward-only lifecycle;
// delivered_at is stamped on the transition into delivered and never
// overwritten afterwards. The second result reports whether the change
// cancels the order, which must also return its reserved stock.
func orderStatusUpdates(order *tables.Order, req *structs.OrderUpdateRequest, now time.Time) (map[string]any, bool, error) {
	updates := map[string]any{"updated_at": now}
	cancelling := false

	if req.PaymentStatus != nil {
		updates["payment_status"] = *req.PaymentStatus
	}

	if req.Status != nil {
		next := tables.OrderStatus(*req.Status)
		if next != order.Status {
			if !order.Status.CanTransitionTo(next) {
				return nil, false, fmt.Errorf("%w: %s -> %s", lib.ErrInvalidTransition, order.Status, next)
			}
			updates["status"] = next
			if next == tables.OrderStatusDelivered && order.DeliveredAt == nil {
				updates["delivered_at"] = now
			}
			cancelling = next == tables.OrderStatusCancelled
		}
	}

	return updates, cancelling, nil
}

// UpdateOrder applies admin updates to payment status and lifecycle
// status. A status update to cancelled goes through the same
// stock-releasing transaction as CancelOrder.
func (os *OrderService) UpdateOrder(ctx context.Context, orderId uuid.UUID, req *structs.OrderUpdateRequest) (*OrderView, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("id", orderId).
		Relation("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	updates, cancelling, err := orderStatusUpdates(order, req, time.Now())
	if err != nil {
		return nil, err
	}

	if cancelling {
		if err := os.cancelPendingOrder(ctx, orderId, order.Items, updates); err != nil {
			return nil, err
		}
		return os.GetOrder(ctx, orderId)
	}

	if _, err := database.Query[tables.Order](os.db).Where("id", orderId).Update(ctx, updates); err != nil {
		return nil, lib.MapPgError(err)
	}

	return os.GetOrder(ctx, orderId)
}

// CancelOrder cancels a pending order and returns its reserved stock in
// the same transaction. Any other status is rejected.
func (os *OrderService) CancelOrder(ctx context.Context, orderId uuid.UUID) (*OrderView, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("id", orderId).
		Relation("Items").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	if order.Status != tables.OrderStatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", lib.ErrInvalidTransition, order.Status, tables.OrderStatusCancelled)
	}

	updates := map[string]any{
		"status":     tables.OrderStatusCancelled,
		"updated_at": time.Now(),
	}
	if err := os.cancelPendingOrder(ctx, orderId, order.Items, updates); err != nil {
		return nil, err
	}

	os.logger.Info("Order cancelled", gecho.Field("order_id", orderId), gecho.Field("order_number", order.OrderNumber))
	return os.GetOrder(ctx, orderId)
}

// cancelPendingOrder flips a pending order to cancelled and releases
// the stock its items reserved, in one transaction.
func (os *OrderService) cancelPendingOrder(ctx context.Context, orderId uuid.UUID, items []tables.OrderItem, updates map[string]any) error {
	return database.Transaction(os.db, ctx, func(tx bun.Tx) error {
		// Guard on status inside the transaction so two concurrent
		// cancels cannot both release stock.
		query := tx.NewUpdate().Table("orders").
			Where("id = ?", orderId).
			Where("status = ?", tables.OrderStatusPending)
		for col, val := range updates {
			query = query.Set("? = ?", bun.Ident(col), val)
		}
		res, err := query.Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return fmt.Errorf("%w: order no longer pending", lib.ErrInvalidTransition)
		}

		for _, item := range items {
			if err := os.productService.ReleaseSale(ctx, tx, item.ProductId, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetOrderStats aggregates a user's order figures at read time; nothing
// is denormalized onto the user row. total_spent sums every order the
// user placed, cancelled ones included.
func (os *OrderService) GetOrderStats(ctx context.Context, userId uuid.UUID) (*structs.OrderStats, error) {
	type statsRow struct {
		TotalOrders     int    `bun:"total_orders"`
		PendingOrders   int    `bun:"pending_orders"`
		DeliveredOrders int    `bun:"delivered_orders"`
		TotalSpent      uint64 `bun:"total_spent"`
	}

	row, err := database.RawQueryOne[statsRow](os.db, ctx, `
		SELECT
			COUNT(*) AS total_orders,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_orders,
			COUNT(*) FILTER (WHERE status = 'delivered') AS delivered_orders,
			COALESCE(SUM(total_price), 0) AS total_spent
		FROM orders
		WHERE user_id = ?`, userId)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	stats := &structs.OrderStats{}
	if row != nil {
		stats.TotalOrders = row.TotalOrders
		stats.PendingOrders = row.PendingOrders
		stats.DeliveredOrders = row.DeliveredOrders
		stats.TotalSpent = row.TotalSpent
	}
	return stats, nil
}
