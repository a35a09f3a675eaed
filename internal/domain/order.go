package domain

import "time"

// OrderStatus is the lifecycle state of a recorded order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a placed order as counted by the order volume source
type Order struct {
	ID             int64
	BranchID       int64
	ServiceType    ServiceType
	Total          int64 // minor currency units
	IdempotencyKey string
	Status         OrderStatus
	PlacedAt       time.Time
}

// Branch is the branch data needed for evaluation
type Branch struct {
	ID       int64
	Name     string
	Timezone string
}

// IsActive returns true if the order still counts toward order volume
func (o Order) IsActive() bool {
	return o.Status == OrderStatusPlaced
}

// OrderFilter selects orders of one branch for listing
type OrderFilter struct {
	BranchID    int64
	ServiceType *ServiceType
	Status      *OrderStatus
	From        *time.Time // inclusive
	To          *time.Time // exclusive
	Limit       uint64
}
