package models

import "time"

// Role classifies a user as an item owner or a borrower.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// User represents a registered user. Issued by the identity service;
// the client never mutates it.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// ItemStatus is the availability state of an item.
type ItemStatus string

const (
	ItemAvailable ItemStatus = "available"
	ItemBorrowed  ItemStatus = "borrowed"
)

// Item is an ownable, lendable thing. Created and updated by the API;
// the client reads it and derives a default borrow window from Duration.
type Item struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl"`
	Status      ItemStatus `json:"status"`
	Location    string     `json:"location"`
	Duration    int        `json:"duration"` // default loan length in days; 0 means unset
	SellerID    int64      `json:"sellerId"`
	Seller      User       `json:"seller"`
	CreatedAt   time.Time  `json:"createdAt,omitzero"`
	UpdatedAt   time.Time  `json:"updatedAt,omitzero"`
}

// RequestStatus is the lifecycle state of a borrow request.
//
// Legal transitions: pending → approved, pending → denied,
// approved → returned. The API is the authority on transitions; client
// code only gates which actions it offers.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusDenied   RequestStatus = "denied"
	StatusReturned RequestStatus = "returned"
)

// BorrowRequest is a buyer's proposal to borrow an item for a date range,
// subject to owner approval. The API owns the record; clients hold a
// transient copy refreshed on load or after a successful mutation.
type BorrowRequest struct {
	ID        int64         `json:"id"`
	ItemID    int64         `json:"itemId"`
	Item      Item          `json:"item"`
	BuyerID   int64         `json:"buyerId"`
	Buyer     User          `json:"buyer"`
	Status    RequestStatus `json:"status"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Message   string        `json:"message"` // set at creation, never mutated after
	CreatedAt time.Time     `json:"createdAt,omitzero"`
	UpdatedAt time.Time     `json:"updatedAt,omitzero"`
}

// CanDecide reports whether approve/deny actions apply to a request in the
// given state. This is display gating only — the server must still reject
// illegal transitions.
func CanDecide(s RequestStatus) bool {
	return s == StatusPending
}

// CanTransition reports whether moving from one request state to another is
// legal under the lifecycle rules.
func CanTransition(from, to RequestStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusDenied
	case StatusApproved:
		return to == StatusReturned
	default:
		return false
	}
}

// Variant is a visual treatment class for a status badge. Purely cosmetic;
// carries no state semantics.
type Variant string

const (
	VariantOutline     Variant = "outline"
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// StatusVariant maps a request status to its badge treatment:
// pending gets the neutral outline, approved the emphasized default, and
// everything else (denied, returned) the destructive treatment.
func StatusVariant(s RequestStatus) Variant {
	switch s {
	case StatusPending:
		return VariantOutline
	case StatusApproved:
		return VariantDefault
	default:
		return VariantDestructive
	}
}
