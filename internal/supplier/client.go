package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/enums"
	"github.com/tripbazaar/travel-backend/pkg/logger"
	"github.com/tripbazaar/travel-backend/pkg/metrics"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

const (
	opAutosuggest   = "autosuggest"
	opSearch        = "search"
	opBookingPolicy = "bookingpolicy"
	opPrebook       = "prebook"
	opCancel        = "cancel"
)

// Client is the typed HTTP gateway to the upstream hotel API. One
// instance is constructed at startup and shared across requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	locale     string

	breaker *gobreaker.CircuitBreaker
	metrics *metrics.SupplierMetrics
	log     *logger.Logger
}

// NewClient builds the gateway from config. The circuit breaker trips
// after the configured consecutive failures and stays open for the
// configured window; while open every call fails fast as ErrUpstream.
func NewClient(cfg config.SupplierConfig, m *metrics.SupplierMetrics, logg *logger.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "hotel-supplier",
		Timeout: cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerConsecutiveFailures
		},
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		locale:     cfg.Locale,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		metrics:    m,
		log:        logg,
	}
}

type suggestionGroup struct {
	Results []suggestionItem `json:"results"`
}

type suggestionItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HotelCount int    `json:"hotelCount"`
}

type autosuggestData struct {
	TransactionIdentifier string           `json:"transaction_identifier"`
	City                  *suggestionGroup `json:"city"`
	Hotel                 *suggestionGroup `json:"hotel"`
	Poi                   *suggestionGroup `json:"poi"`
}

type autosuggestEnvelope struct {
	TransactionIdentifier string           `json:"transaction_identifier"`
	Data                  *autosuggestData `json:"data"`
}

// Autosuggest resolves a raw term to normalized suggestions. The
// upstream groups results by kind; each group is flattened, tagged
// with the conversation identifier and given a display name here.
func (c *Client) Autosuggest(ctx context.Context, term string) ([]Suggestion, error) {
	body := map[string]any{
		"autosuggest": map[string]any{
			"query":  term,
			"locale": c.locale,
		},
	}

	var envelope autosuggestEnvelope
	if err := c.post(ctx, opAutosuggest, "/autosuggest", body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, nil
	}

	txn := envelope.TransactionIdentifier
	if txn == "" {
		txn = envelope.Data.TransactionIdentifier
	}

	var suggestions []Suggestion
	if envelope.Data.City != nil {
		for _, item := range envelope.Data.City.Results {
			suggestions = append(suggestions, Suggestion{
				Kind:                  enums.SuggestionKindCity,
				ID:                    LimitRegionIDs(item.ID, MaxRegionIDs),
				Name:                  item.Name,
				DisplayName:           fmt.Sprintf("%s | (%d)", item.Name, item.HotelCount),
				HotelCount:            item.HotelCount,
				TransactionIdentifier: txn,
			})
		}
	}
	if envelope.Data.Hotel != nil {
		for _, item := range envelope.Data.Hotel.Results {
			suggestions = append(suggestions, Suggestion{
				Kind:                  enums.SuggestionKindHotel,
				ID:                    item.ID,
				Name:                  item.Name,
				DisplayName:           item.Name,
				TransactionIdentifier: txn,
			})
		}
	}
	if envelope.Data.Poi != nil {
		for _, item := range envelope.Data.Poi.Results {
			suggestions = append(suggestions, Suggestion{
				Kind:                  enums.SuggestionKindPoi,
				ID:                    item.ID,
				Name:                  item.Name,
				DisplayName:           fmt.Sprintf("%s | (%d)", item.Name, item.HotelCount),
				HotelCount:            item.HotelCount,
				TransactionIdentifier: txn,
			})
		}
	}
	return suggestions, nil
}

type searchEnvelope struct {
	TransactionIdentifier string        `json:"transaction_identifier"`
	Data                  *SearchResult `json:"data"`
}

// SearchHotels runs an area or hotel search. The region id list is
// capped before leaving the process.
func (c *Client) SearchHotels(ctx context.Context, search types.Search) (*SearchResult, error) {
	return c.search(ctx, search)
}

// SearchPackages re-runs a search pinned to a single hotel to refresh
// its package list.
func (c *Client) SearchPackages(ctx context.Context, search types.Search) (*SearchResult, error) {
	return c.search(ctx, search)
}

func (c *Client) search(ctx context.Context, search types.Search) (*SearchResult, error) {
	search.ID = LimitRegionIDs(search.ID, MaxRegionIDs)

	var envelope searchEnvelope
	if err := c.post(ctx, opSearch, "/search", map[string]any{"search": search}, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, upstreamErr(opSearch, errors.New("empty data payload"))
	}
	if envelope.Data.TransactionIdentifier == "" {
		envelope.Data.TransactionIdentifier = envelope.TransactionIdentifier
	}
	return envelope.Data, nil
}

type bookingPolicyEnvelope struct {
	TransactionIdentifier string                  `json:"transaction_identifier"`
	Data                  *types.BookingPolicyDoc `json:"data"`
}

// BookingPolicy fetches the cancellation policy and repriced package
// for one booking key within a search conversation.
func (c *Client) BookingPolicy(ctx context.Context, transactionID string, search types.Search, pkg types.HotelPackage) (*BookingPolicyResult, error) {
	body := map[string]any{
		"bookingpolicy": map[string]any{
			"transaction_identifier": transactionID,
			"search":                 search,
			"package":                pkg,
		},
	}

	raw, err := c.postRaw(ctx, opBookingPolicy, "/bookingpolicy", body)
	if err != nil {
		return nil, err
	}
	var envelope bookingPolicyEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, upstreamErr(opBookingPolicy, err)
	}
	if envelope.Data == nil {
		return nil, upstreamErr(opBookingPolicy, errors.New("empty data payload"))
	}
	return &BookingPolicyResult{
		TransactionIdentifier: envelope.TransactionIdentifier,
		Policy:                *envelope.Data,
		Raw:                   raw,
	}, nil
}

type prebookEnvelope struct {
	Data *types.PrebookDoc `json:"data"`
}

// Prebook provisionally reserves the package with the supplier.
func (c *Client) Prebook(ctx context.Context, req PrebookRequest) (*PrebookResult, error) {
	raw, err := c.postRaw(ctx, opPrebook, "/prebook", map[string]any{"prebook": req})
	if err != nil {
		return nil, err
	}
	var envelope prebookEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, upstreamErr(opPrebook, err)
	}
	if envelope.Data == nil {
		return nil, upstreamErr(opPrebook, errors.New("empty data payload"))
	}
	return &PrebookResult{Doc: *envelope.Data, Raw: raw}, nil
}

type cancelEnvelope struct {
	Data *types.CancelDoc `json:"data"`
}

// Cancel cancels a supplier-side booking by its booking id.
func (c *Client) Cancel(ctx context.Context, bookingID string) (*CancelResult, error) {
	body := map[string]any{
		"cancel": map[string]any{
			"booking_id": bookingID,
		},
	}
	raw, err := c.postRaw(ctx, opCancel, "/cancel", body)
	if err != nil {
		return nil, err
	}
	var envelope cancelEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, upstreamErr(opCancel, err)
	}
	if envelope.Data == nil {
		return nil, upstreamErr(opCancel, errors.New("empty data payload"))
	}
	return &CancelResult{Doc: *envelope.Data, Raw: raw}, nil
}

func (c *Client) post(ctx context.Context, operation, path string, body any, out any) error {
	raw, err := c.postRaw(ctx, operation, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return upstreamErr(operation, err)
	}
	return nil
}

func (c *Client) postRaw(ctx context.Context, operation, path string, body any) ([]byte, error) {
	started := time.Now()

	result, err := c.breaker.Execute(func() (any, error) {
		return c.doPost(ctx, path, body)
	})

	c.metrics.ObserveDuration(operation, time.Since(started))
	if err != nil {
		c.metrics.IncFailure(operation)
		if c.log != nil {
			c.log.Error(ctx, "supplier call failed", err)
		}
		return nil, upstreamErr(operation, err)
	}
	return result.([]byte), nil
}

func (c *Client) doPost(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
