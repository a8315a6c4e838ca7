// Package stubapi is an in-memory implementation of the lending API used as
// a local development fixture and in integration tests. It is not the
// production server; it exists so the terminal client has something real to
// talk to on a laptop with no credentials.
package stubapi

import (
	"errors"
	"sync"
	"time"

	"github.com/lendaround/lendaround/pkg/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotOwner       = errors.New("not the item owner")
	ErrNotPending     = errors.New("request is not pending")
	ErrBadCredentials = errors.New("bad credentials")
)

// account pairs a user with its (plaintext, fixture-only) password.
type account struct {
	user     models.User
	password string
}

// Store holds the fixture's state. Safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	accounts    []account
	items       []models.Item
	requests    []models.BorrowRequest
	nextID      int64
	idempotency map[string]int64 // idempotency key -> created request id
}

// NewStore returns a store seeded with two accounts and a few lendable items.
//
//	seller@lendaround.test / borrow  (owns the items)
//	buyer@lendaround.test  / borrow
func NewStore() *Store {
	seller := models.User{ID: 1, Email: "seller@lendaround.test", Name: "Sam Seller", Role: models.RoleSeller}
	buyer := models.User{ID: 2, Email: "buyer@lendaround.test", Name: "Billie Buyer", Role: models.RoleBuyer}

	s := &Store{
		accounts: []account{
			{user: seller, password: "borrow"},
			{user: buyer, password: "borrow"},
		},
		items: []models.Item{
			{ID: 1, Title: "Cordless Drill", Category: "Tools", Status: models.ItemAvailable,
				Location: "Shelf A", Duration: 10, SellerID: seller.ID, Seller: seller},
			{ID: 2, Title: "Camping Tent", Category: "Outdoors", Status: models.ItemAvailable,
				Location: "Garage", Duration: 0, SellerID: seller.ID, Seller: seller},
			{ID: 3, Title: "Stand Mixer", Category: "Kitchen", Status: models.ItemAvailable,
				Location: "Pantry", Duration: 3, SellerID: seller.ID, Seller: seller},
		},
		nextID:      1,
		idempotency: make(map[string]int64),
	}
	return s
}

// Authenticate returns the user for the given credentials.
func (s *Store) Authenticate(email, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.user.Email == email && a.password == password {
			return a.user, nil
		}
	}
	return models.User{}, ErrBadCredentials
}

// Items returns all items.
func (s *Store) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// IncomingRequests returns requests addressed to items owned by ownerID,
// in creation order.
func (s *Store) IncomingRequests(ownerID int64) []models.BorrowRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BorrowRequest
	for _, r := range s.requests {
		if r.Item.SellerID == ownerID {
			out = append(out, r)
		}
	}
	return out
}

// RequestsByBuyer returns requests created by buyerID, in creation order.
func (s *Store) RequestsByBuyer(buyerID int64) []models.BorrowRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BorrowRequest
	for _, r := range s.requests {
		if r.BuyerID == buyerID {
			out = append(out, r)
		}
	}
	return out
}

// Create records a new pending borrow request. When idemKey has been seen
// before, the previously created request is returned instead of a duplicate.
func (s *Store) Create(buyer models.User, itemID int64, start, end time.Time, message, idemKey string) (models.BorrowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idemKey != "" {
		if id, ok := s.idempotency[idemKey]; ok {
			for _, r := range s.requests {
				if r.ID == id {
					return r, nil
				}
			}
		}
	}

	var item *models.Item
	for i := range s.items {
		if s.items[i].ID == itemID {
			item = &s.items[i]
			break
		}
	}
	if item == nil {
		return models.BorrowRequest{}, ErrNotFound
	}

	req := models.BorrowRequest{
		ID:        s.nextID,
		ItemID:    item.ID,
		Item:      *item,
		BuyerID:   buyer.ID,
		Buyer:     buyer,
		Status:    models.StatusPending,
		StartDate: start,
		EndDate:   end,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.requests = append(s.requests, req)
	if idemKey != "" {
		s.idempotency[idemKey] = req.ID
	}
	return req, nil
}

// Decide moves a pending request to the given terminal decision. Only the
// item owner may decide, and repeat transitions are rejected — the client is
// at-least-once by design, so the dedup lives here.
func (s *Store) Decide(ownerID, requestID int64, to models.RequestStatus) (models.BorrowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		r := &s.requests[i]
		if r.ID != requestID {
			continue
		}
		if r.Item.SellerID != ownerID {
			return models.BorrowRequest{}, ErrNotOwner
		}
		if !models.CanTransition(r.Status, to) {
			return models.BorrowRequest{}, ErrNotPending
		}
		r.Status = to
		r.UpdatedAt = time.Now()
		if to == models.StatusApproved {
			for j := range s.items {
				if s.items[j].ID == r.ItemID {
					s.items[j].Status = models.ItemBorrowed
				}
			}
			r.Item.Status = models.ItemBorrowed
		}
		return *r, nil
	}
	return models.BorrowRequest{}, ErrNotFound
}
