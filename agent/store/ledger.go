package store

import (
	"fmt"
	"sync"
	"time"

	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
)

// Ledger holds orders in append order. Items and total are immutable after
// creation; UpdateStatus is the only post-creation mutation.
type Ledger struct {
	mu     sync.RWMutex
	orders []contractx.Order
}

func NewLedger(orders []contractx.Order) *Ledger {
	l := &Ledger{orders: make([]contractx.Order, 0, len(orders))}
	for _, o := range orders {
		l.orders = append(l.orders, cloneOrder(o))
	}
	return l
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

// List returns a snapshot copy in append order.
func (l *Ledger) List() []contractx.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]contractx.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, cloneOrder(o))
	}
	return out
}

func (l *Ledger) ByID(orderID string) (contractx.Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx := l.indexOf(orderID)
	if idx < 0 {
		return contractx.Order{}, false
	}
	return cloneOrder(l.orders[idx]), true
}

// ByUser returns the user's orders in append order. The user id is not
// validated for existence; an unknown user simply has no orders.
func (l *Ledger) ByUser(userID string) []contractx.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []contractx.Order
	for _, o := range l.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

func (l *Ledger) Append(order contractx.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders = append(l.orders, cloneOrder(order))
}

// UpdateStatus sets the order's status and refreshes UpdatedAt. Reapplying
// the current status is accepted and still refreshes the timestamp. Values
// outside the enumeration are rejected without mutation.
func (l *Ledger) UpdateStatus(orderID string, status contractx.OrderStatus, now time.Time) (contractx.Order, error) {
	if _, ok := contractx.ParseOrderStatus(string(status)); !ok {
		return contractx.Order{}, fmt.Errorf("%w: %q", contractx.ErrInvalidStatus, status)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(orderID)
	if idx < 0 {
		return contractx.Order{}, fmt.Errorf("%w: order %s", contractx.ErrNotFound, orderID)
	}

	l.orders[idx].Status = status
	l.orders[idx].UpdatedAt = now.UTC()
	return cloneOrder(l.orders[idx]), nil
}

// indexOf must be called with the lock held.
func (l *Ledger) indexOf(orderID string) int {
	for i := range l.orders {
		if l.orders[i].OrderID == orderID {
			return i
		}
	}
	return -1
}

func cloneOrder(o contractx.Order) contractx.Order {
	out := o
	out.Items = append([]contractx.OrderItem(nil), o.Items...)
	return out
}
