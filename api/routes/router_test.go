package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	internalbooking "github.com/tripbazaar/travel-backend/internal/booking"
	internalsearch "github.com/tripbazaar/travel-backend/internal/search"
	internaltxns "github.com/tripbazaar/travel-backend/internal/transactions"
	pkgauth "github.com/tripbazaar/travel-backend/pkg/auth"
	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSearchService struct{}

func (stubSearchService) Suggest(ctx context.Context, in internalsearch.SuggestInput) (*internalsearch.SuggestResult, error) {
	return &internalsearch.SuggestResult{}, nil
}

func (stubSearchService) SearchHotels(ctx context.Context, in internalsearch.HotelSearchInput) (*internalsearch.HotelSearchResult, error) {
	return &internalsearch.HotelSearchResult{}, nil
}

func (stubSearchService) SearchPackages(ctx context.Context, in internalsearch.PackageSearchInput) (*internalsearch.PackageSearchResult, error) {
	return &internalsearch.PackageSearchResult{}, nil
}

type stubBookingService struct {
	cancelled []uuid.UUID
}

func (s *stubBookingService) Policy(ctx context.Context, in internalbooking.PolicyInput) (*internalbooking.PolicyResult, error) {
	return &internalbooking.PolicyResult{}, nil
}

func (s *stubBookingService) Prebook(ctx context.Context, in internalbooking.PrebookInput) (*internalbooking.PrebookResult, error) {
	return &internalbooking.PrebookResult{}, nil
}

func (s *stubBookingService) Cancel(ctx context.Context, callerID, transactionID uuid.UUID) (*internalbooking.CancelResult, error) {
	if callerID == uuid.Nil {
		return nil, fmt.Errorf("anonymous caller reached cancel")
	}
	s.cancelled = append(s.cancelled, transactionID)
	return &internalbooking.CancelResult{}, nil
}

type stubTransactionsService struct{}

func (stubTransactionsService) List(ctx context.Context, callerID uuid.UUID) ([]internaltxns.Entry, error) {
	return []internaltxns.Entry{}, nil
}

func (stubTransactionsService) Invoice(ctx context.Context, callerID, transactionID uuid.UUID) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func (stubTransactionsService) Voucher(ctx context.Context, callerID, transactionID uuid.UUID) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		nil,
		stubSearchService{},
		&stubBookingService{},
		stubTransactionsService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestSearchRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/search", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestPrebookAllowsAnonymousCallers(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"booking_policy_id":"bp-1","transaction_id":"txn-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/prebook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous prebook got %d", resp.Code)
	}
}

func TestPrebookRejectsMalformedToken(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"booking_policy_id":"bp-1","transaction_id":"txn-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/prebook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token got %d", resp.Code)
	}
}

func TestCancelRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	body := fmt.Sprintf(`{"transactionId":%q}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/cancel", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestCancelSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := fmt.Sprintf(`{"transactionId":%q}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/cancel", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authed cancel got %d", resp.Code)
	}
}

func TestTransactionsRequireJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/transactions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/transactions", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authed history got %d", resp.Code)
	}
}

func TestInvoiceServesPDF(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels/invoice?transactionid="+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for invoice got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %s", ct)
	}
}
