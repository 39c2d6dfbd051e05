package order

// Status is shared by free-form orders and product orders.
type Status string

const (
	StatusPlaced     Status = "Order Placed"
	StatusProcessing Status = "Processing"
	StatusConfirmed  Status = "Confirmed"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// validNext is the enforced transition table. Delivered and Cancelled are
// terminal.
var validNext = map[Status]map[Status]bool{
	StatusPlaced:     {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
