package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"estimation-service/internal/core/domain"

	"github.com/google/uuid"
)

// fakeListingStore - подмена ListingStorePort для тестов ядра.
type fakeListingStore struct {
	target        *domain.Listing
	targetErr     error
	candidates    []domain.Listing
	candidatesErr error

	gotCriteria *domain.ComparableCriteria
}

func (f *fakeListingStore) GetListingByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	if f.targetErr != nil {
		return nil, f.targetErr
	}
	return f.target, nil
}

func (f *fakeListingStore) FindComparableListings(ctx context.Context, criteria domain.ComparableCriteria) ([]domain.Listing, error) {
	f.gotCriteria = &criteria
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}
	return f.candidates, nil
}

func saleTarget() *domain.Listing {
	return &domain.Listing{
		ID:     uuid.New(),
		Status: domain.ListingStatusActive,
		Property: domain.Property{
			ID: uuid.New(),
			Location: domain.Location{
				Locality: "Lakeview", City: "Springfield", State: "IL", ZipCode: "62704",
			},
			PropertyType: domain.PropertyTypeSale,
			Size:         1000, Bedrooms: 3, Bathrooms: 2, Price: 250000,
			Amenities: map[string]bool{"pool": true},
		},
	}
}

func candidateWith(size float64, price float64) domain.Listing {
	return domain.Listing{
		ID:     uuid.New(),
		Status: domain.ListingStatusActive,
		Property: domain.Property{
			ID:           uuid.New(),
			PropertyType: domain.PropertyTypeSale,
			Size:         size, Bedrooms: 3, Bathrooms: 2, Price: price,
		},
	}
}

func TestEstimateSaleMeanOverAllCandidates(t *testing.T) {
	store := &fakeListingStore{
		target: saleTarget(),
		candidates: []domain.Listing{
			candidateWith(1000, 100000),
			candidateWith(1500, 300000),
			candidateWith(2000, 500000),
		},
	}
	uc := NewEstimatePriceUseCase(store)

	result, err := uc.Execute(context.Background(), store.target.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EstimatedPrice == nil {
		t.Fatal("EstimatedPrice should be set for a sale target")
	}
	if *result.EstimatedPrice != 300000 {
		t.Errorf("EstimatedPrice: got %v, want 300000", *result.EstimatedPrice)
	}
	if result.EstimatedRent != nil {
		t.Errorf("EstimatedRent must stay nil for a sale target, got %v", *result.EstimatedRent)
	}
	if len(result.Candidates) != 3 {
		t.Errorf("candidates: got %d, want 3", len(result.Candidates))
	}
}

func TestEstimateRentalBranch(t *testing.T) {
	target := saleTarget()
	target.Property.PropertyType = domain.PropertyTypeRental
	store := &fakeListingStore{
		target: target,
		candidates: []domain.Listing{
			candidateWith(1000, 14000),
			candidateWith(1100, 16000),
		},
	}
	uc := NewEstimatePriceUseCase(store)

	result, err := uc.Execute(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EstimatedRent == nil {
		t.Fatal("EstimatedRent should be set for a rental target")
	}
	if *result.EstimatedRent != 15000 {
		t.Errorf("EstimatedRent: got %v, want 15000", *result.EstimatedRent)
	}
	if result.EstimatedPrice != nil {
		t.Errorf("EstimatedPrice must stay nil for a rental target")
	}
}

func TestEstimateCandidatesSortedByScoreDescending(t *testing.T) {
	store := &fakeListingStore{
		target: saleTarget(),
		candidates: []domain.Listing{
			candidateWith(1900, 100000), // дальше всех по площади
			candidateWith(1000, 200000), // точное совпадение
			candidateWith(1400, 300000),
		},
	}
	uc := NewEstimatePriceUseCase(store)

	result, err := uc.Execute(context.Background(), store.target.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i-1].Score < result.Candidates[i].Score {
			t.Fatalf("candidates not sorted by score descending: %v before %v",
				result.Candidates[i-1].Score, result.Candidates[i].Score)
		}
	}
	if result.Candidates[0].Price != 200000 {
		t.Errorf("best candidate should be the exact structural match, got price %v", result.Candidates[0].Price)
	}
}

func TestEstimateEmptyPoolIsSuccessWithoutEstimate(t *testing.T) {
	store := &fakeListingStore{target: saleTarget(), candidates: nil}
	uc := NewEstimatePriceUseCase(store)

	result, err := uc.Execute(context.Background(), store.target.ID)
	if err != nil {
		t.Fatalf("empty pool must not be an error, got: %v", err)
	}
	if result.EstimatedPrice != nil || result.EstimatedRent != nil {
		t.Error("both estimates must be nil when the pool is empty")
	}
	if !strings.Contains(result.Message, "Not enough similar properties") {
		t.Errorf("message should explain the lack of candidates, got %q", result.Message)
	}
	if len(result.Candidates) != 0 {
		t.Errorf("candidate list should be empty, got %d", len(result.Candidates))
	}
}

func TestEstimateTargetNotFound(t *testing.T) {
	store := &fakeListingStore{targetErr: domain.ErrListingNotFound}
	uc := NewEstimatePriceUseCase(store)

	_, err := uc.Execute(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
	if store.gotCriteria != nil {
		t.Error("candidate pool must not be queried when the target is missing")
	}
}

func TestEstimateStoreFailureIsWrapped(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := &fakeListingStore{target: saleTarget(), candidatesErr: storeErr}
	uc := NewEstimatePriceUseCase(store)

	_, err := uc.Execute(context.Background(), store.target.ID)
	if err == nil {
		t.Fatal("expected an error when the candidate query fails")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("store error should be wrapped, got %v", err)
	}
	if errors.Is(err, domain.ErrListingNotFound) {
		t.Error("store failure must not be reported as not-found")
	}
}

func TestEstimateCriteriaFromTarget(t *testing.T) {
	target := saleTarget()
	store := &fakeListingStore{target: target}
	uc := NewEstimatePriceUseCase(store)

	if _, err := uc.Execute(context.Background(), target.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.gotCriteria == nil {
		t.Fatal("candidate pool was never queried")
	}

	c := store.gotCriteria
	if c.ExcludeListingID != target.ID {
		t.Error("target must be excluded from its own candidate pool")
	}
	if c.Location != target.Property.Location {
		t.Errorf("criteria location: got %+v, want %+v", c.Location, target.Property.Location)
	}
	if c.PropertyType != target.Property.PropertyType {
		t.Errorf("criteria property type: got %q, want %q", c.PropertyType, target.Property.PropertyType)
	}
	// Кандидатами могут быть только active и verified объявления.
	if len(c.Statuses) != 2 {
		t.Fatalf("criteria statuses: got %v", c.Statuses)
	}
	allowed := map[string]bool{domain.ListingStatusActive: true, domain.ListingStatusVerified: true}
	for _, s := range c.Statuses {
		if !allowed[s] {
			t.Errorf("unexpected candidate status %q", s)
		}
	}
}
