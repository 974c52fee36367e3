package port

import (
	"context"

	"estimation-service/internal/core/domain"

	"github.com/google/uuid"
)

// ListingStorePort - контракт чтения объявлений из хранилища.
// Движку оценки нужны ровно две операции, обе read-only; записи нет.
type ListingStorePort interface {
	// GetListingByID возвращает объявление вместе с заполненным Property.
	// Если объявление не найдено или его ссылка на объект не разрешается,
	// возвращает domain.ErrListingNotFound.
	GetListingByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)

	// FindComparableListings возвращает пул кандидатов по условиям подбора.
	// Кандидаты с неразрешившейся ссылкой на объект в пул не попадают —
	// это не ошибка, просто пул меньше.
	FindComparableListings(ctx context.Context, criteria domain.ComparableCriteria) ([]domain.Listing, error)
}
