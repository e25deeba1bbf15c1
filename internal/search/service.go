package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/internal/hotels"
	"github.com/tripbazaar/travel-backend/internal/supplier"
	"github.com/tripbazaar/travel-backend/pkg/cache"
	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/db/models"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/logger"
	"github.com/tripbazaar/travel-backend/pkg/metrics"
	"github.com/tripbazaar/travel-backend/pkg/pagination"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

const (
	minSuggestTermLength = 3

	flowAutosuggest = "autosuggest"
	flowHotelSearch = "hotels_search"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	AutosuggestKey(term string) string
	HotelSearchKey(canonicalSearch string) string
}

type markupApplier interface {
	Apply(ctx context.Context, starRating int, pkg *types.HotelPackage) error
}

// Service drives autosuggest and hotel/package search: cache-aside
// memoization, windowed pagination, markup fan-out and result filters.
type Service interface {
	Suggest(ctx context.Context, in SuggestInput) (*SuggestResult, error)
	SearchHotels(ctx context.Context, in HotelSearchInput) (*HotelSearchResult, error)
	SearchPackages(ctx context.Context, in PackageSearchInput) (*PackageSearchResult, error)
}

type service struct {
	gateway      supplier.API
	cache        cacheStore
	cacheMetrics *metrics.CacheMetrics
	hotels       hotels.Repository
	markup       markupApplier
	log          *logger.Logger

	sourceMarket   string
	autosuggestTTL time.Duration
	hotelSearchTTL time.Duration
}

// NewService builds the search orchestrator.
func NewService(
	gateway supplier.API,
	store cacheStore,
	hotelsRepo hotels.Repository,
	markup markupApplier,
	supplierCfg config.SupplierConfig,
	cacheCfg config.CacheConfig,
	cacheMetrics *metrics.CacheMetrics,
	logg *logger.Logger,
) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("supplier gateway required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store required")
	}
	if hotelsRepo == nil {
		return nil, fmt.Errorf("hotels repository required")
	}
	if markup == nil {
		return nil, fmt.Errorf("markup applier required")
	}
	return &service{
		gateway:        gateway,
		cache:          store,
		cacheMetrics:   cacheMetrics,
		hotels:         hotelsRepo,
		markup:         markup,
		log:            logg,
		sourceMarket:   supplierCfg.SourceMarket,
		autosuggestTTL: cacheCfg.AutosuggestTTL,
		hotelSearchTTL: cacheCfg.HotelSearchTTL,
	}, nil
}

// Suggest resolves a free-text term to places and hotels. Terms
// shorter than three characters short-circuit to the empty complete
// response, matching a client that types ahead.
func (s *service) Suggest(ctx context.Context, in SuggestInput) (*SuggestResult, error) {
	params, ok := in.Window.Normalize()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "perPage should not be greater than 50")
	}

	empty := &SuggestResult{
		Data:    []supplier.Suggestion{},
		Status:  pagination.StatusComplete,
		Page:    params.Page,
		PerPage: params.PerPage,
	}

	term := strings.TrimSpace(in.Query)
	if utf8.RuneCountInString(term) < minSuggestTermLength {
		return empty, nil
	}

	key := s.cache.AutosuggestKey(term)
	items := s.cachedSuggestions(ctx, key)

	if items == nil {
		s.cacheMetrics.IncMiss(flowAutosuggest)

		fetched, err := s.gateway.Autosuggest(ctx, term)
		if err != nil {
			if delErr := s.cache.Delete(ctx, key); delErr != nil {
				s.log.Warn(ctx, "failed to invalidate autosuggest cache entry")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "autosuggest failed")
		}
		items = fetched

		if len(items) > 0 {
			if payload, err := json.Marshal(items); err == nil {
				if err := s.cache.Set(ctx, key, payload, s.autosuggestTTL); err != nil {
					s.log.Warn(ctx, "failed to cache autosuggest results")
				}
			}
		}
	} else {
		s.cacheMetrics.IncHit(flowAutosuggest)
	}

	window := pagination.NewWindow(params, len(items))
	if window.Beyond() {
		return empty, nil
	}

	lower, upper := window.Bounds()
	return &SuggestResult{
		Data:              items[lower:upper],
		Status:            window.Status,
		CurrentItemsCount: window.CurrentCount,
		TotalItemsCount:   window.TotalCount,
		Page:              window.Page,
		PerPage:           window.PerPage,
		TotalPages:        window.TotalPages,
	}, nil
}

// cachedSuggestions returns the memoized suggestion list or nil. Cache
// failures degrade to a direct supplier call, never to the caller.
func (s *service) cachedSuggestions(ctx context.Context, key string) []supplier.Suggestion {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn(ctx, "autosuggest cache read failed")
		}
		return nil
	}
	var items []supplier.Suggestion
	if err := json.Unmarshal([]byte(cached), &items); err != nil {
		return nil
	}
	return items
}

// SearchHotels runs an area search, windows the full result list and
// enriches the selected page: persistence, markup, filters.
func (s *service) SearchHotels(ctx context.Context, in HotelSearchInput) (*HotelSearchResult, error) {
	params, ok := in.Window.Normalize()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "perPage should not be greater than 50")
	}
	if len(in.Details) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid details array")
	}
	if in.TransactionIdentifier != "" {
		ctx = s.log.WithTransactionIdentifier(ctx, in.TransactionIdentifier)
	}

	searchObj := s.buildSearch(in.Area.Type, in.Area.ID, in.Area.Name, in.CheckInDate, in.CheckOutDate, in.Details, in.TransactionIdentifier)

	key, err := s.hotelSearchCacheKey(searchObj)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building cache key")
	}

	result := s.cachedSearchResult(ctx, key)
	if result == nil {
		s.cacheMetrics.IncMiss(flowHotelSearch)

		fetched, err := s.gateway.SearchHotels(ctx, searchObj)
		if err != nil {
			if delErr := s.cache.Delete(ctx, key); delErr != nil {
				s.log.Warn(ctx, "failed to invalidate hotel search cache entry")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hotel search failed")
		}
		result = fetched

		// only non-empty results are worth memoizing
		if result.TotalHotelsCount >= 1 {
			if payload, err := json.Marshal(result); err == nil {
				if err := s.cache.Set(ctx, key, payload, s.hotelSearchTTL); err != nil {
					s.log.Warn(ctx, "failed to cache hotel search results")
				}
			}
		}
	} else {
		s.cacheMetrics.IncHit(flowHotelSearch)
	}

	if len(result.Hotels) < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no hotels found")
	}

	window := pagination.NewWindow(params, len(result.Hotels))
	if window.Beyond() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invalid page no")
	}

	lower, upper := window.Bounds()
	selected := result.Hotels[lower:upper]

	// hotels without a single rate package carry nothing bookable
	withPackages := make([]supplier.Hotel, 0, len(selected))
	for _, h := range selected {
		if len(h.Rates.Packages) > 0 {
			withPackages = append(withPackages, h)
		}
	}

	rows := make([]models.Hotel, len(withPackages))
	for i, h := range withPackages {
		rows[i] = models.Hotel{
			SupplierID:   h.ID,
			Name:         h.Name,
			OriginalName: h.OriginalName,
			StarRating:   h.StarRating,
			Region:       h.Region,
			Rates:        h.Rates,
		}
	}
	if err := s.hotels.CreateBatch(ctx, rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "error in generating response")
	}

	// markup fan-out: independent per hotel, output order preserved by
	// index, failed hotels dropped from the result entirely
	views := make([]*HotelView, len(withPackages))
	group, groupCtx := errgroup.WithContext(ctx)
	for i := range withPackages {
		i := i
		group.Go(func() error {
			h := withPackages[i]
			view := &HotelView{
				HotelID:      rows[i].ID,
				SupplierID:   h.ID,
				Name:         h.Name,
				OriginalName: h.OriginalName,
				StarRating:   h.StarRating,
				Region:       h.Region,
				Rates:        types.Rates{Packages: append([]types.HotelPackage(nil), h.Rates.Packages...)},
			}
			if err := s.markup.Apply(groupCtx, h.StarRating, &view.Rates.Packages[0]); err != nil {
				s.log.Warn(s.log.WithField(ctx, "supplier_hotel_id", h.ID), "dropping hotel after markup failure")
				return nil
			}
			views[i] = view
			return nil
		})
	}
	_ = group.Wait()

	minPrice, maxPrice := 0.0, 1.0
	marked := make([]HotelView, 0, len(views))
	for _, view := range views {
		if view == nil {
			continue
		}
		lead := view.Rates.Packages[0]
		if lead.BaseAmount < minPrice {
			minPrice = lead.BaseAmount
		}
		if lead.BaseAmount > maxPrice {
			maxPrice = lead.BaseAmount
		}
		marked = append(marked, *view)
	}

	filtered := applyFilters(marked, in.Filters)

	return &HotelSearchResult{
		Search: result.Search,
		Region: result.Region,
		Hotels: filtered,
		Price: Price{
			MinPrice: int64(math.Floor(minPrice)),
			MaxPrice: int64(math.Ceil(maxPrice)),
		},
		CurrentHotelsCount:    params.CurrentCount + len(filtered),
		TotalHotelsCount:      len(result.Hotels),
		Page:                  window.Page,
		PerPage:               window.PerPage,
		TotalPages:            window.TotalPages,
		Status:                window.Status,
		TransactionIdentifier: result.TransactionIdentifier,
	}, nil
}

// SearchPackages refreshes the package list of one stored hotel and
// re-applies markup per package. A package that fails markup is
// dropped; losing all of them fails the operation.
func (s *service) SearchPackages(ctx context.Context, in PackageSearchInput) (*PackageSearchResult, error) {
	if in.HotelID == uuid.Nil || in.CheckInDate == "" || in.CheckOutDate == "" || len(in.Details) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed")
	}
	if in.TransactionIdentifier != "" {
		ctx = s.log.WithTransactionIdentifier(ctx, in.TransactionIdentifier)
	}

	hotel, err := s.hotels.FindByID(ctx, in.HotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading hotel")
	}

	searchObj := s.buildSearch("hotel", hotel.SupplierID, hotel.Name, in.CheckInDate, in.CheckOutDate, in.Details, in.TransactionIdentifier)

	result, err := s.gateway.SearchPackages(ctx, searchObj)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "package search failed")
	}
	if len(result.Hotels) < 1 || result.TotalPackagesCount < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel cannot be found")
	}

	fresh := result.Hotels[0]
	if len(fresh.Rates.Packages) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no packages available for this hotel")
	}

	view := HotelView{
		HotelID:      hotel.ID,
		SupplierID:   fresh.ID,
		Name:         fresh.Name,
		OriginalName: fresh.OriginalName,
		StarRating:   fresh.StarRating,
		Region:       fresh.Region,
	}

	marked := make([]*types.HotelPackage, len(fresh.Rates.Packages))
	group, groupCtx := errgroup.WithContext(ctx)
	for i := range fresh.Rates.Packages {
		i := i
		group.Go(func() error {
			pkg := fresh.Rates.Packages[i]
			if err := s.markup.Apply(groupCtx, fresh.StarRating, &pkg); err != nil {
				s.log.Warn(ctx, "dropping package after markup failure")
				return nil
			}
			marked[i] = &pkg
			return nil
		})
	}
	_ = group.Wait()

	valid := make([]types.HotelPackage, 0, len(marked))
	for _, pkg := range marked {
		if pkg != nil {
			valid = append(valid, *pkg)
		}
	}
	if len(valid) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no valid packages available for this hotel")
	}
	view.Rates = types.Rates{Packages: valid}

	var metaSearchID *uuid.UUID
	if in.ReferenceID != "" {
		record, err := s.hotels.FindMetaSearchByReference(ctx, in.ReferenceID)
		switch {
		case err == nil:
			metaSearchID = &record.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			s.log.Error(ctx, "meta search lookup failed", err)
		}
	}

	// the stored row keeps the raw supplier rates; markup stays computed per request
	if err := s.hotels.UpdatePackages(ctx, hotel.ID, fresh.Rates, metaSearchID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "hotel not found")
	}

	return &PackageSearchResult{
		Search:                result.Search,
		Hotel:                 view,
		CurrentPackagesCount:  result.CurrentPackagesCount,
		TotalPackagesCount:    result.TotalPackagesCount,
		Page:                  result.Page,
		PerPage:               result.PerPage,
		TotalPages:            result.TotalPages,
		Status:                result.Status,
		TransactionIdentifier: result.TransactionIdentifier,
	}, nil
}

func (s *service) buildSearch(areaType, areaID, areaName, checkIn, checkOut string, details []types.RoomDetail, transactionIdentifier string) types.Search {
	normalized, adults, children := types.NormalizeRoomDetails(details)

	searchObj := types.Search{
		SourceMarket:    s.sourceMarket,
		Type:            areaType,
		ID:              supplier.LimitRegionIDs(areaID, supplier.MaxRegionIDs),
		Name:            areaName,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		TotalAdultCount: strconv.Itoa(adults),
		TotalChildCount: strconv.Itoa(children),
		TotalRoomCount:  strconv.Itoa(len(normalized)),
		Details:         normalized,
	}
	// web clients serialize a missing identifier as the literal string
	if transactionIdentifier != "" && transactionIdentifier != "undefined" {
		searchObj.TransactionIdentifier = transactionIdentifier
	}
	return searchObj
}

// hotelSearchCacheKey canonicalizes the search minus the conversation
// identifier, so identical searches share an entry across conversations.
func (s *service) hotelSearchCacheKey(searchObj types.Search) (string, error) {
	searchObj.TransactionIdentifier = ""
	canonical, err := json.Marshal(searchObj)
	if err != nil {
		return "", err
	}
	return s.cache.HotelSearchKey(string(canonical)), nil
}

func (s *service) cachedSearchResult(ctx context.Context, key string) *supplier.SearchResult {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn(ctx, "hotel search cache read failed")
		}
		return nil
	}
	var result supplier.SearchResult
	if err := json.Unmarshal([]byte(cached), &result); err != nil {
		return nil
	}
	return &result
}

func applyFilters(views []HotelView, filters Filters) []HotelView {
	filtered := make([]HotelView, 0, len(views))
	for _, hotel := range views {
		if len(hotel.Rates.Packages) == 0 {
			continue
		}
		if !matchesFilters(hotel, filters) {
			continue
		}
		filtered = append(filtered, hotel)
	}
	return filtered
}

// matchesFilters applies the filter dimensions as an intersection.
// Room and food type scan every package; refundability and price read
// only the lead package.
func matchesFilters(hotel HotelView, filters Filters) bool {
	if len(filters.RoomType) > 0 {
		if !anyPackage(hotel, func(pkg types.HotelPackage) bool {
			return containsString(filters.RoomType, pkg.RoomDetails.RoomType)
		}) {
			return false
		}
	}
	if len(filters.FoodType) > 0 {
		if !anyPackage(hotel, func(pkg types.HotelPackage) bool {
			return containsString(filters.FoodType, pkg.RoomDetails.Food)
		}) {
			return false
		}
	}
	if len(filters.Refundable) > 0 {
		if !containsBool(filters.Refundable, hotel.Rates.Packages[0].RoomDetails.Refundable()) {
			return false
		}
	}
	if len(filters.StarRating) > 0 {
		if !containsInt(filters.StarRating, hotel.StarRating) {
			return false
		}
	}
	if filters.Price != nil && filters.Price.Min >= 0 && filters.Price.Max > 0 {
		lead := hotel.Rates.Packages[0].BaseAmount
		if lead < filters.Price.Min || lead > filters.Price.Max {
			return false
		}
	}
	return true
}

func anyPackage(hotel HotelView, match func(types.HotelPackage) bool) bool {
	for _, pkg := range hotel.Rates.Packages {
		if match(pkg) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsBool(values []bool, target bool) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
