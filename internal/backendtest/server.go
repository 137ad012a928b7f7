// Package backendtest runs an in-process stand-in for the commerce backend
// so client and checkout tests can exercise real HTTP round trips.
package backendtest

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/FransManlangit/jicus-pos/internal/domain"
)

type ReceivedOrder struct {
	Order          domain.Order
	IdempotencyKey string
	Token          string
}

type Server struct {
	Products []domain.Product
	Email    string
	Password string
	Token    string
	Users    map[string]domain.UserProfile

	mu              sync.Mutex
	orders          []ReceivedOrder
	orderFailStatus int
	orderFailBody   string

	httpServer *httptest.Server
}

// Start spins up the fake backend and tears it down with the test.
func Start(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		Email:    "cashier@jicus.ph",
		Password: "hunter2",
		Token:    "test-token",
		Users:    map[string]domain.UserProfile{},
	}
	s.httpServer = httptest.NewServer(s.router())
	t.Cleanup(s.httpServer.Close)
	return s
}

func (s *Server) URL() string {
	return s.httpServer.URL
}

// FailOrders makes the order endpoint answer with the given status and
// message until cleared with status 0.
func (s *Server) FailOrders(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderFailStatus = status
	s.orderFailBody = message
}

func (s *Server) Orders() []ReceivedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ReceivedOrder, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, s.Products)
	})

	r.Post("/users/login", func(w http.ResponseWriter, req *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if creds.Email != s.Email || creds.Password != s.Password {
			respondError(w, http.StatusUnauthorized, "Please provide correct credentials")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"token": s.Token})
	})

	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		if bearerToken(req) != s.Token {
			respondError(w, http.StatusUnauthorized, "missing user authentication")
			return
		}
		profile, ok := s.Users[chi.URLParam(req, "id")]
		if !ok {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondJSON(w, http.StatusOK, profile)
	})

	r.Post("/orders/newOrder", func(w http.ResponseWriter, req *http.Request) {
		if bearerToken(req) != s.Token {
			respondError(w, http.StatusUnauthorized, "missing user authentication")
			return
		}

		s.mu.Lock()
		failStatus, failBody := s.orderFailStatus, s.orderFailBody
		s.mu.Unlock()
		if failStatus != 0 {
			respondError(w, failStatus, failBody)
			return
		}

		var order domain.Order
		if err := json.NewDecoder(req.Body).Decode(&order); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		s.mu.Lock()
		s.orders = append(s.orders, ReceivedOrder{
			Order:          order,
			IdempotencyKey: req.Header.Get("Idempotency-Key"),
			Token:          bearerToken(req),
		})
		s.mu.Unlock()

		respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
	})

	return r
}

func bearerToken(req *http.Request) string {
	return strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
