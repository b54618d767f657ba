package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"Storefront/models"
	"Storefront/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func orderRequest(items ...types.OrderItemRequest) *types.CreateOrderRequest {
	return &types.CreateOrderRequest{
		CustomerName: "Nadia Benali",
		Phone:        "0612345678",
		City:         "Casablanca",
		Address:      "12 Rue des Fleurs",
		Items:        items,
	}
}

func line(productID uint64, color, size string, qty int) types.OrderItemRequest {
	return types.OrderItemRequest{ProductID: productID, ColorName: color, Size: size, Quantity: qty}
}

func assertOrderTotals(t *testing.T, order *models.Order) {
	t.Helper()
	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, sum.Equal(order.Subtotal), "subtotal %s != sum of lines %s", order.Subtotal, sum)
	assert.True(t, order.Subtotal.Add(order.ShippingFee).Equal(order.TotalAmount))
}

func TestCreateOrder_DecrementsAndCancelRestores(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Linen Shirt", "100", "Black", map[string]int{"M": 5})

	order, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "Black", "M", 3)))
	require.NoError(t, err)

	assert.Equal(t, "ORD2603140001", order.OrderNumber)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Nil(t, order.UserID)
	assertDecimal(t, "300", order.Subtotal)
	assertDecimal(t, "30", order.ShippingFee)
	assertDecimal(t, "330", order.TotalAmount)
	assert.Equal(t, 2, env.stock(t, p.ID, "Black", "M"))

	stored, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Linen Shirt", stored.Items[0].ProductName)
	assert.Equal(t, "https://cdn.example.com/Black.jpg", stored.Items[0].ImageUrl)
	assertOrderTotals(t, stored)

	cancelled, err := env.orders.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 5, env.stock(t, p.ID, "Black", "M"))

	movements, err := env.products.ListStockMovements(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, -3, movements[0].Delta)
	assert.Equal(t, models.StockCauseOrderCreated, movements[0].Cause)
	assert.Equal(t, 3, movements[1].Delta)
	assert.Equal(t, models.StockCauseOrderCancelled, movements[1].Cause)
	assert.Equal(t, order.OrderNumber, movements[1].OrderNumber)

	assert.Equal(t, 2, env.events.count())
}

func TestCreateOrder_Shipping(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		qty      int
		shipping string
		total    string
	}{
		{name: "below threshold", price: "250", qty: 2, shipping: "30", total: "530"},
		{name: "exactly threshold", price: "500", qty: 2, shipping: "30", total: "1030"},
		{name: "above threshold", price: "500.50", qty: 2, shipping: "0", total: "1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			p := env.seedProduct(t, "Coat", tt.price, "Camel", map[string]int{"L": 10})

			order, err := env.orders.CreateOrder(context.Background(), 7, orderRequest(line(p.ID, "Camel", "L", tt.qty)))
			require.NoError(t, err)
			assertDecimal(t, tt.shipping, order.ShippingFee)
			assertDecimal(t, tt.total, order.TotalAmount)
			require.NotNil(t, order.UserID)
			assert.Equal(t, uint64(7), *order.UserID)
			assertOrderTotals(t, order)
		})
	}
}

func TestCreateOrder_UsesSalePrice(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Dress", "200", "Red", map[string]int{"S": 4})
	require.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"is_on_sale": true,
		"sale_price": decimal.RequireFromString("149.90"),
	}).Error)

	order, err := env.orders.CreateOrder(context.Background(), 0, orderRequest(line(p.ID, "Red", "S", 1)))
	require.NoError(t, err)
	assertDecimal(t, "149.9", order.Items[0].Price)
	assertDecimal(t, "179.9", order.TotalAmount)
}

func TestCreateOrder_SequencePerDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Scarf", "40", "Blue", map[string]int{"U": 10})

	first, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "Blue", "U", 1)))
	require.NoError(t, err)
	second, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "Blue", "U", 1)))
	require.NoError(t, err)
	assert.Equal(t, "ORD2603140001", first.OrderNumber)
	assert.Equal(t, "ORD2603140002", second.OrderNumber)

	env.now = env.now.AddDate(0, 0, 1)
	third, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "Blue", "U", 1)))
	require.NoError(t, err)
	assert.Equal(t, "ORD2603150001", third.OrderNumber)
}

func TestCreateOrder_Validation(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Cap", "20", "White", map[string]int{"U": 3})

	tests := []struct {
		name  string
		req   func() *types.CreateOrderRequest
		field string
	}{
		{name: "missing name", field: "customer_name", req: func() *types.CreateOrderRequest {
			r := orderRequest(line(p.ID, "White", "U", 1))
			r.CustomerName = "  "
			return r
		}},
		{name: "short phone", field: "phone", req: func() *types.CreateOrderRequest {
			r := orderRequest(line(p.ID, "White", "U", 1))
			r.Phone = "06123"
			return r
		}},
		{name: "phone with letters", field: "phone", req: func() *types.CreateOrderRequest {
			r := orderRequest(line(p.ID, "White", "U", 1))
			r.Phone = "06123456ab"
			return r
		}},
		{name: "no items", field: "items", req: func() *types.CreateOrderRequest {
			return orderRequest()
		}},
		{name: "zero quantity", field: "items[0].quantity", req: func() *types.CreateOrderRequest {
			return orderRequest(line(p.ID, "White", "U", 0))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.orders.CreateOrder(context.Background(), 0, tt.req())
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Equal(t, 3, env.stock(t, p.ID, "White", "U"))
}

func TestCreateOrder_UnknownOrInactiveVariant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Belt", "35", "Brown", map[string]int{"90": 2})

	_, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "Brown", "100", 1)))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "size", nf.Entity)

	env.setActive(t, p.ID, false)
	_, err = env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "Brown", "90", 1)))
	var ie *ItemError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 0, ie.Index)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "product", nf.Entity)
	assert.Equal(t, 2, env.stock(t, p.ID, "Brown", "90"))
}

func TestCreateOrder_RollsBackEarlierItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shirt := env.seedProduct(t, "Shirt", "60", "Green", map[string]int{"M": 5})
	jeans := env.seedProduct(t, "Jeans", "90", "Indigo", map[string]int{"32": 3})

	_, err := env.orders.CreateOrder(ctx, 0, orderRequest(
		line(shirt.ID, "Green", "M", 2),
		line(jeans.ID, "Indigo", "32", 10),
	))

	var ie *ItemError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Index)
	var ise *InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 3, ise.Available)
	assert.Equal(t, 10, ise.Requested)

	assert.Equal(t, 5, env.stock(t, shirt.ID, "Green", "M"))
	assert.Equal(t, 3, env.stock(t, jeans.ID, "Indigo", "32"))

	var orders, items, movements int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, env.db.Model(&models.OrderItem{}).Count(&items).Error)
	require.NoError(t, env.db.Model(&models.StockMovement{}).Count(&movements).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Zero(t, movements)
	assert.Zero(t, env.events.count())
}

func TestCreateOrder_ConcurrentLastUnit(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Limited Tee", "45", "Black", map[string]int{"M": 1})

	const buyers = 2
	errs := make([]error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.orders.CreateOrder(context.Background(), 0, orderRequest(line(p.ID, "Black", "M", 1)))
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		var ise *InsufficientStockError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &ise):
			rejected++
			assert.Equal(t, 0, ise.Available)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0, env.stock(t, p.ID, "Black", "M"))
}

func TestCreateOrder_PriceFrozen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Hoodie", "80", "Grey", map[string]int{"L": 5})

	order, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "Grey", "L", 2)))
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]any{"price": decimal.RequireFromString("120"), "name": "Hoodie v2"}).Error)

	stored, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assertDecimal(t, "80", stored.Items[0].Price)
	assert.Equal(t, "Hoodie", stored.Items[0].ProductName)
	assertDecimal(t, "190", stored.TotalAmount)
	assertOrderTotals(t, stored)
}

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Sock", "10", "White", map[string]int{"U": 5})

	order, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "White", "U", 2)))
	require.NoError(t, err)
	confirmed, err := env.orders.UpdateStatus(ctx, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	events := env.events.count()

	again, err := env.orders.UpdateStatus(ctx, order.ID, "Confirmed")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, again.Status)
	assert.True(t, confirmed.UpdatedAt.Equal(again.UpdatedAt))
	assert.Equal(t, events, env.events.count())
	assert.Equal(t, 3, env.stock(t, p.ID, "White", "U"))
}

func TestUpdateStatus_DoubleCancelRestoresOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Sock", "10", "White", map[string]int{"U": 5})

	order, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "White", "U", 4)))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.orders.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, env.stock(t, p.ID, "White", "U"))
	var restored int64
	require.NoError(t, env.db.Model(&models.StockMovement{}).
		Where("cause = ?", models.StockCauseOrderCancelled).Count(&restored).Error)
	assert.Equal(t, int64(1), restored)
}

func TestUpdateStatus_RejectsInvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Sock", "10", "White", map[string]int{"U": 5})

	order, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "White", "U", 1)))
	require.NoError(t, err)

	_, err = env.orders.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, models.OrderStatusNew, ite.From)
	assert.Equal(t, models.OrderStatusShipped, ite.To)
	assert.Equal(t, []string{models.OrderStatusConfirmed, models.OrderStatusCancelled}, ite.Allowed)

	for _, status := range []string{models.OrderStatusConfirmed, models.OrderStatusShipped, models.OrderStatusDelivered} {
		_, err = env.orders.UpdateStatus(ctx, order.ID, status)
		require.NoError(t, err)
	}
	_, err = env.orders.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.ErrorAs(t, err, &ite)
	assert.Empty(t, ite.Allowed)
	assert.Equal(t, 4, env.stock(t, p.ID, "White", "U"))

	_, err = env.orders.UpdateStatus(ctx, order.ID, "lost")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = env.orders.UpdateStatus(ctx, order.ID+1, models.OrderStatusConfirmed)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUpdateStatus_CancelSkipsMissingVariant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Polo", "50", "Navy", map[string]int{"S": 3, "M": 3})

	order, err := env.orders.CreateOrder(ctx, 0, orderRequest(
		line(p.ID, "Navy", "S", 1),
		line(p.ID, "Navy", "M", 2),
	))
	require.NoError(t, err)

	require.NoError(t, env.db.Where("label = ?", "S").Delete(&models.ProductSize{}).Error)

	cancelled, err := env.orders.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 3, env.stock(t, p.ID, "Navy", "M"))
}

func TestMarkFlagsAndListOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProduct(t, "Sock", "10", "White", map[string]int{"U": 10})

	var ids []uint64
	for i := 0; i < 3; i++ {
		order, err := env.orders.CreateOrder(ctx, 0, orderRequest(line(p.ID, "White", "U", 1)))
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	seen := true
	marked, err := env.orders.MarkFlags(ctx, ids[0], &types.UpdateOrderFlagsRequest{IsSeen: &seen})
	require.NoError(t, err)
	assert.True(t, marked.IsSeen)
	assert.False(t, marked.IsRead)
	assert.Equal(t, models.OrderStatusNew, marked.Status)

	_, err = env.orders.MarkFlags(ctx, ids[0], &types.UpdateOrderFlagsRequest{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = env.orders.MarkFlags(ctx, 404, &types.UpdateOrderFlagsRequest{IsSeen: &seen})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "order", nf.Entity)

	page, err := env.orders.ListOrders(ctx, &types.ListOrdersRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, ids[2], page.Orders[0].ID)
	assert.Equal(t, ids[1], page.NextCursor)
	assert.Equal(t, int64(2), page.Unseen)

	next, err := env.orders.ListOrders(ctx, &types.ListOrdersRequest{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Orders, 1)
	assert.False(t, next.HasMore)
	assert.Equal(t, ids[0], next.Orders[0].ID)

	unseen := false
	filtered, err := env.orders.ListOrders(ctx, &types.ListOrdersRequest{IsSeen: &unseen})
	require.NoError(t, err)
	assert.Len(t, filtered.Orders, 2)

	_, err = env.orders.ListOrders(ctx, &types.ListOrdersRequest{Status: "lost"})
	require.ErrorAs(t, err, &ve)
}
