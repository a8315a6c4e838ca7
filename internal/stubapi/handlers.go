package stubapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v4"

	"github.com/lendaround/lendaround/pkg/identity"
	"github.com/lendaround/lendaround/pkg/models"
)

type ctxKey int

const userKey ctxKey = 0

// Handler holds dependencies for the stub API handlers.
type Handler struct {
	store      *Store
	signingKey []byte
}

// New creates a Handler signing tokens with the given key.
func New(s *Store, signingKey string) *Handler {
	return &Handler{store: s, signingKey: []byte(signingKey)}
}

// Router builds the stub API's chi router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Post("/api/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/items", h.Items)
		r.Get("/api/my-items/requests", h.IncomingRequests)
		r.Get("/api/my-requests", h.MyRequests)
		r.Post("/api/borrow-requests", h.CreateRequest)
		r.Put("/api/borrow-requests/{id}/approve", h.Approve)
		r.Put("/api/borrow-requests/{id}/deny", h.Deny)
	})

	return r
}

// --- Auth ---

func (h *Handler) issueToken(u models.User) (string, error) {
	now := time.Now()
	claims := identity.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "lendaround-stub",
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(12 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.signingKey)
}

func (h *Handler) parseToken(raw string) (models.User, error) {
	claims := &identity.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return h.signingKey, nil
	})
	if err != nil {
		return models.User{}, err
	}
	if !token.Valid {
		return models.User{}, fmt.Errorf("invalid token")
	}
	return models.User{ID: claims.UserID, Email: claims.Email, Role: models.Role(claims.Role)}, nil
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			jsonError(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		u, err := h.parseToken(raw)
		if err != nil {
			jsonError(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func requestUser(r *http.Request) models.User {
	u, _ := r.Context().Value(userKey).(models.User)
	return u
}

// --- Handlers ---

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	u, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		jsonError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}
	token, err := h.issueToken(u)
	if err != nil {
		jsonError(w, "token issue failed", http.StatusInternalServerError)
		return
	}
	jsonOK(w, http.StatusOK, loginResp{Token: token, User: u})
}

// Items handles GET /api/items
func (h *Handler) Items(w http.ResponseWriter, _ *http.Request) {
	jsonOK(w, http.StatusOK, h.store.Items())
}

// IncomingRequests handles GET /api/my-items/requests
func (h *Handler) IncomingRequests(w http.ResponseWriter, r *http.Request) {
	u := requestUser(r)
	requests := h.store.IncomingRequests(u.ID)
	if requests == nil {
		requests = []models.BorrowRequest{}
	}
	jsonOK(w, http.StatusOK, requests)
}

// MyRequests handles GET /api/my-requests
func (h *Handler) MyRequests(w http.ResponseWriter, r *http.Request) {
	u := requestUser(r)
	requests := h.store.RequestsByBuyer(u.ID)
	if requests == nil {
		requests = []models.BorrowRequest{}
	}
	jsonOK(w, http.StatusOK, requests)
}

type createReq struct {
	ItemID    int64     `json:"itemId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Message   string    `json:"message"`
}

// CreateRequest handles POST /api/borrow-requests. Requests carrying an
// already-seen Idempotency-Key return the original record.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	u := requestUser(r)
	created, err := h.store.Create(u, req.ItemID, req.StartDate, req.EndDate,
		req.Message, r.Header.Get("Idempotency-Key"))
	if errors.Is(err, ErrNotFound) {
		jsonError(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsonOK(w, http.StatusCreated, created)
}

// Approve handles PUT /api/borrow-requests/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.StatusApproved)
}

// Deny handles PUT /api/borrow-requests/{id}/deny
func (h *Handler) Deny(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.StatusDenied)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, to models.RequestStatus) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, "invalid request id", http.StatusBadRequest)
		return
	}
	u := requestUser(r)
	req, err := h.store.Decide(u.ID, id, to)
	switch {
	case errors.Is(err, ErrNotFound):
		jsonError(w, "request not found", http.StatusNotFound)
	case errors.Is(err, ErrNotOwner):
		jsonError(w, "only the item owner may decide", http.StatusForbidden)
	case errors.Is(err, ErrNotPending):
		jsonError(w, "request is not pending", http.StatusConflict)
	case err != nil:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	default:
		jsonOK(w, http.StatusOK, req)
	}
}

// --- helpers ---

func jsonOK(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
