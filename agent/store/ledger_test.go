package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
)

func testOrders() []contractx.Order {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return []contractx.Order{
		{
			OrderID: "order_aa11", UserID: "user_1", Status: contractx.StatusPending,
			Items:       []contractx.OrderItem{{ProductID: "prod_1", ProductName: "Wireless Keyboard", Quantity: 2, UnitPrice: 49.99, TotalPrice: 99.98}},
			TotalAmount: 99.98, CreatedAt: created, UpdatedAt: created,
		},
		{
			OrderID: "order_bb22", UserID: "user_2", Status: contractx.StatusShipped,
			Items:       []contractx.OrderItem{{ProductID: "prod_2", ProductName: "USB-C Hub", Quantity: 1, UnitPrice: 29.50, TotalPrice: 29.50}},
			TotalAmount: 29.50, CreatedAt: created, UpdatedAt: created,
		},
		{
			OrderID: "order_cc33", UserID: "user_1", Status: contractx.StatusDelivered,
			Items:       []contractx.OrderItem{{ProductID: "prod_3", ProductName: "Desk Lamp", Quantity: 3, UnitPrice: 19.99, TotalPrice: 59.97}},
			TotalAmount: 59.97, CreatedAt: created, UpdatedAt: created,
		},
	}
}

func TestLedgerByUser(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(testOrders())

	orders := ledger.ByUser("user_1")
	require.Len(t, orders, 2)
	assert.Equal(t, "order_aa11", orders[0].OrderID)
	assert.Equal(t, "order_cc33", orders[1].OrderID)

	assert.Empty(t, ledger.ByUser("user_missing"))
}

func TestLedgerAppendAndByID(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(nil)
	require.Equal(t, 0, ledger.Len())

	order := testOrders()[0]
	ledger.Append(order)

	got, ok := ledger.ByID("order_aa11")
	require.True(t, ok)
	assert.Equal(t, order.TotalAmount, got.TotalAmount)

	// The returned order is a copy; mutating its items must not leak back.
	got.Items[0].Quantity = 100
	again, _ := ledger.ByID("order_aa11")
	assert.Equal(t, 2, again.Items[0].Quantity)
}

func TestLedgerUpdateStatus(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(testOrders())
	now := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

	updated, err := ledger.UpdateStatus("order_aa11", contractx.StatusProcessing, now)
	require.NoError(t, err)
	assert.Equal(t, contractx.StatusProcessing, updated.Status)
	assert.Equal(t, now, updated.UpdatedAt)

	// CreatedAt stays put.
	assert.Equal(t, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), updated.CreatedAt)
}

func TestLedgerUpdateStatusReapplySameStatus(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(testOrders())
	later := time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC)

	updated, err := ledger.UpdateStatus("order_bb22", contractx.StatusShipped, later)
	require.NoError(t, err)
	assert.Equal(t, contractx.StatusShipped, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt, "reapplying the current status still refreshes UpdatedAt")
}

func TestLedgerUpdateStatusRejectsUnknownValue(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(testOrders())

	_, err := ledger.UpdateStatus("order_aa11", contractx.OrderStatus("refunded"), time.Now())
	require.ErrorIs(t, err, contractx.ErrInvalidStatus)

	got, _ := ledger.ByID("order_aa11")
	assert.Equal(t, contractx.StatusPending, got.Status)
}

func TestLedgerUpdateStatusUnknownOrder(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(testOrders())

	_, err := ledger.UpdateStatus("order_missing", contractx.StatusShipped, time.Now())
	require.ErrorIs(t, err, contractx.ErrNotFound)
}
