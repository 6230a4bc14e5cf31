package core

import "fmt"

// stockEffect is the inventory side effect of a status transition.
type stockEffect int

const (
	stockNone    stockEffect = iota
	stockRestock             // entering Cancelled returns the items
	stockDeduct              // leaving Cancelled takes them back out
)

// transition describes one allowed (from, to) edge. terminal destinations
// purge the order's notification entries instead of appending a new one.
type transition struct {
	stock    stockEffect
	terminal bool
}

// transitions is the explicit edge table for order status changes. Absent
// edges are invalid. The back office may move an order backwards through the
// fulfilment states to correct mistakes; a Delivered order can no longer be
// cancelled, only reopened.
var transitions = map[OrderStatus]map[OrderStatus]transition{
	StatusPending: {
		StatusConfirmed:  {},
		StatusDispatched: {},
		StatusDelivered:  {terminal: true},
		StatusCancelled:  {stock: stockRestock, terminal: true},
	},
	StatusConfirmed: {
		StatusPending:    {},
		StatusDispatched: {},
		StatusDelivered:  {terminal: true},
		StatusCancelled:  {stock: stockRestock, terminal: true},
	},
	StatusDispatched: {
		StatusPending:   {},
		StatusConfirmed: {},
		StatusDelivered: {terminal: true},
		StatusCancelled: {stock: stockRestock, terminal: true},
	},
	StatusDelivered: {
		StatusPending:    {},
		StatusConfirmed:  {},
		StatusDispatched: {},
	},
	StatusCancelled: {
		StatusPending:    {stock: stockDeduct},
		StatusConfirmed:  {stock: stockDeduct},
		StatusDispatched: {stock: stockDeduct},
		StatusDelivered:  {stock: stockDeduct, terminal: true},
	},
}

// lookupTransition validates a status change and returns its side effects.
func lookupTransition(from, to OrderStatus) (transition, error) {
	if from == to {
		return transition{}, fmt.Errorf("order is already %s", from)
	}
	edge, ok := transitions[from][to]
	if !ok {
		return transition{}, fmt.Errorf("cannot move order from %s to %s", from, to)
	}
	return edge, nil
}
