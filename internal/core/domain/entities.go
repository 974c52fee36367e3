package domain

import (
	"github.com/google/uuid"
)

// Статусы жизненного цикла объявления.
const (
	ListingStatusDraft    = "draft"
	ListingStatusPending  = "pending"
	ListingStatusActive   = "active"
	ListingStatusVerified = "verified"
	ListingStatusRejected = "rejected"
	ListingStatusHidden   = "hidden"
	ListingStatusSold     = "sold"
)

// Типы предложения. Все, что не продажа, идет по ветке аренды.
const (
	PropertyTypeSale   = "sale"
	PropertyTypeRental = "rental"
)

// CandidateStatuses возвращает статусы, в которых объявление может
// участвовать в подборе аналогов.
func CandidateStatuses() []string {
	return []string{ListingStatusActive, ListingStatusVerified}
}

// Location — адресная часть объекта. Аналоги подбираются по точному
// совпадению всех четырех полей.
type Location struct {
	Locality string
	City     string
	State    string
	ZipCode  string
}

// Property — физический объект недвижимости.
type Property struct {
	ID           uuid.UUID
	Location     Location
	PropertyType string
	Size         float64
	Bedrooms     int
	Bathrooms    int
	Price        float64
	Amenities    map[string]bool
}

// Listing — рыночное предложение, оборачивающее Property.
// Property здесь всегда заполнен: объявления с неразрешившейся ссылкой
// отбрасываются еще на границе хранилища.
type Listing struct {
	ID       uuid.UUID
	Status   string
	Property Property
}

// ComparableCriteria — условия подбора пула кандидатов.
type ComparableCriteria struct {
	ExcludeListingID uuid.UUID
	Location         Location
	PropertyType     string
	Statuses         []string
}

// ScoredCandidate — кандидат с вычисленной мерой схожести.
type ScoredCandidate struct {
	ListingID  uuid.UUID
	PropertyID uuid.UUID
	Price      float64
	Score      float64
}

// EstimateResult — итог оценки. Не персистится, живет только в ответе.
// Заполнено не более одного из полей EstimatedPrice / EstimatedRent.
type EstimateResult struct {
	EstimatedPrice *float64
	EstimatedRent  *float64
	Candidates     []ScoredCandidate
	Message        string
}
