package repositories

import (
	"errors"
	"sync"

	"storefront/models"
)

var ErrDuplicateOrder = errors.New("order already exists")

type OrderRecord struct {
	UserID int
	Order  models.OrderSubmission
}

// OrderRepository stores submitted orders keyed by the client order id. It
// only rejects an exact id reuse; it does not deduplicate by content.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]OrderRecord
	seq    []string
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: map[string]OrderRecord{}}
}

func (r *OrderRepository) Create(userID int, order models.OrderSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderID]; ok {
		return ErrDuplicateOrder
	}
	r.orders[order.OrderID] = OrderRecord{UserID: userID, Order: order}
	r.seq = append(r.seq, order.OrderID)
	return nil
}

func (r *OrderRepository) FindByID(orderID string) (OrderRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.orders[orderID]
	return rec, ok
}

func (r *OrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.seq)
}
