package stubapi_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lendaround/lendaround/internal/stubapi"
	"github.com/lendaround/lendaround/pkg/models"
)

func seedRequest(t *testing.T, s *stubapi.Store) models.BorrowRequest {
	t.Helper()
	buyer, err := s.Authenticate("buyer@lendaround.test", "borrow")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	now := time.Now()
	req, err := s.Create(buyer, 1, now, now.AddDate(0, 0, 7), "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return req
}

func TestAuthenticate(t *testing.T) {
	s := stubapi.NewStore()
	if _, err := s.Authenticate("seller@lendaround.test", "nope"); !errors.Is(err, stubapi.ErrBadCredentials) {
		t.Errorf("err = %v, want ErrBadCredentials", err)
	}
	u, err := s.Authenticate("seller@lendaround.test", "borrow")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Role != models.RoleSeller {
		t.Errorf("role = %q", u.Role)
	}
}

func TestCreate_IdempotencyKeyDedupes(t *testing.T) {
	s := stubapi.NewStore()
	buyer, _ := s.Authenticate("buyer@lendaround.test", "borrow")
	now := time.Now()

	first, err := s.Create(buyer, 1, now, now.AddDate(0, 0, 7), "hi", "k1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.Create(buyer, 1, now, now.AddDate(0, 0, 7), "hi", "k1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("duplicate key created a second request: %d vs %d", first.ID, second.ID)
	}
	if got := s.RequestsByBuyer(buyer.ID); len(got) != 1 {
		t.Errorf("expected 1 stored request, got %d", len(got))
	}
}

func TestCreate_UnknownItem(t *testing.T) {
	s := stubapi.NewStore()
	buyer, _ := s.Authenticate("buyer@lendaround.test", "borrow")
	now := time.Now()
	if _, err := s.Create(buyer, 999, now, now, "", ""); !errors.Is(err, stubapi.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDecide_ApproveMarksItemBorrowed(t *testing.T) {
	s := stubapi.NewStore()
	req := seedRequest(t, s)

	decided, err := s.Decide(1, req.ID, models.StatusApproved)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != models.StatusApproved {
		t.Errorf("status = %q", decided.Status)
	}
	for _, item := range s.Items() {
		if item.ID == req.ItemID && item.Status != models.ItemBorrowed {
			t.Errorf("item status = %q, want borrowed", item.Status)
		}
	}
}

func TestDecide_RejectsRepeatTransition(t *testing.T) {
	s := stubapi.NewStore()
	req := seedRequest(t, s)

	if _, err := s.Decide(1, req.ID, models.StatusApproved); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if _, err := s.Decide(1, req.ID, models.StatusApproved); !errors.Is(err, stubapi.ErrNotPending) {
		t.Errorf("repeat approve err = %v, want ErrNotPending", err)
	}
	if _, err := s.Decide(1, req.ID, models.StatusDenied); !errors.Is(err, stubapi.ErrNotPending) {
		t.Errorf("deny after approve err = %v, want ErrNotPending", err)
	}
}

func TestDecide_OnlyOwner(t *testing.T) {
	s := stubapi.NewStore()
	req := seedRequest(t, s)

	if _, err := s.Decide(2, req.ID, models.StatusApproved); !errors.Is(err, stubapi.ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestDecide_UnknownRequest(t *testing.T) {
	s := stubapi.NewStore()
	if _, err := s.Decide(1, 42, models.StatusApproved); !errors.Is(err, stubapi.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
