package models

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusConfirmed = "CONFIRMED"
)

// CartLine is one menu item with a quantity. Stored lines always have
// Quantity > 0; a quantity that reaches zero removes the line instead.
type CartLine struct {
	Item     MenuItem `json:"menuItem"`
	Quantity int      `json:"quantity"`
}

// Order is the per-student cart plus its submission status. One order per
// user id; TotalPrice is derived and recomputed on every mutation.
//
// Items marshals with omitempty on purpose: the remote store drops an empty
// sequence entirely, so documents written by other clients may lack the
// field. Normalize restores the empty slice on read.
type Order struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	UserName   string     `json:"userName"`
	SeatNumber string     `json:"seatNumber"`
	Items      []CartLine `json:"items,omitempty"`
	TotalPrice int64      `json:"totalPrice"`
	Status     string     `json:"status"`
	Timestamp  int64      `json:"timestamp"` // unix milliseconds of last mutation
}

// Normalize repairs documents read back from the remote store: a missing
// items sequence means an empty cart, never null.
func (o *Order) Normalize() {
	if o.Items == nil {
		o.Items = []CartLine{}
	}
	if o.Status == "" {
		o.Status = StatusDraft
	}
}

// Clone returns a deep copy so callers can hand orders out of a shared
// mirror without aliasing the items slice.
func (o Order) Clone() Order {
	c := o
	c.Items = make([]CartLine, len(o.Items))
	copy(c.Items, o.Items)
	return c
}
