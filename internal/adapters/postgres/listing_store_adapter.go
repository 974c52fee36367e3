package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"estimation-service/internal/contextkeys"
	"estimation-service/internal/contracts"
	"estimation-service/internal/core/domain"
	"estimation-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListingStoreAdapter - реализация ListingStorePort для PostgreSQL.
type ListingStoreAdapter struct {
	pool *pgxpool.Pool
}

// NewListingStoreAdapter - конструктор.
func NewListingStoreAdapter(pool *pgxpool.Pool) (*ListingStoreAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingStoreAdapter{pool: pool}, nil
}

// GetListingByID возвращает объявление вместе с объектом недвижимости.
func (a *ListingStoreAdapter) GetListingByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "ListingStoreAdapter",
		"method":     "GetListingByID",
		"listing_id": listingID,
	})

	repoLogger.Debug("Loading target listing with property.", nil)
	query := `
		SELECT l.id, l.status,
		       p.id, p.locality, p.city, p.state, p.zip_code, p.property_type,
		       p.size, p.bedrooms, p.bathrooms, p.price, p.amenities
		FROM listings l
		JOIN properties p ON p.id = l.property_id
		WHERE l.id = $1`

	var listing domain.Listing
	var rawAmenities []byte
	err := a.pool.QueryRow(ctx, query, listingID).Scan(
		&listing.ID, &listing.Status,
		&listing.Property.ID,
		&listing.Property.Location.Locality, &listing.Property.Location.City,
		&listing.Property.Location.State, &listing.Property.Location.ZipCode,
		&listing.Property.PropertyType,
		&listing.Property.Size, &listing.Property.Bedrooms, &listing.Property.Bathrooms,
		&listing.Property.Price, &rawAmenities,
	)
	if err != nil {
		// Отсутствие строки - не сбой хранилища, а доменное "не найдено".
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Listing not found in store.", nil)
			return nil, domain.ErrListingNotFound
		}
		repoLogger.Error("Failed to query target listing", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query target listing: %w", err)
	}

	// Невалидный amenities-документ у целевого объявления — сбой данных,
	// оценку по нему строить нельзя.
	amenities, err := contracts.DecodeAmenities(rawAmenities)
	if err != nil {
		repoLogger.Error("Target listing has invalid amenities document", err, nil)
		return nil, fmt.Errorf("target listing %s has invalid amenities: %w", listingID, err)
	}
	listing.Property.Amenities = amenities

	repoLogger.Debug("Successfully loaded target listing.", nil)
	return &listing, nil
}

// FindComparableListings возвращает пул кандидатов для оценки.
// Условия совпадения вложены в JOIN, поэтому строки с неразрешившейся
// ссылкой на объект приходят с NULL-объектом и отбрасываются вторым
// шагом в цикле чтения.
func (a *ListingStoreAdapter) FindComparableListings(ctx context.Context, criteria domain.ComparableCriteria) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":     "ListingStoreAdapter",
		"method":        "FindComparableListings",
		"exclude_id":    criteria.ExcludeListingID,
		"property_type": criteria.PropertyType,
		"zip_code":      criteria.Location.ZipCode,
	})

	repoLogger.Debug("Querying candidate pool.", nil)
	query := `
		SELECT l.id, l.status,
		       p.id, p.locality, p.city, p.state, p.zip_code, p.property_type,
		       p.size, p.bedrooms, p.bathrooms, p.price, p.amenities
		FROM listings l
		LEFT JOIN properties p ON p.id = l.property_id
		    AND p.locality = $1 AND p.city = $2 AND p.state = $3 AND p.zip_code = $4
		    AND p.property_type = $5
		WHERE l.id <> $6 AND l.status = ANY($7)`

	rows, err := a.pool.Query(ctx, query,
		criteria.Location.Locality, criteria.Location.City,
		criteria.Location.State, criteria.Location.ZipCode,
		criteria.PropertyType,
		criteria.ExcludeListingID, criteria.Statuses,
	)
	if err != nil {
		repoLogger.Error("Failed to query candidate pool", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query candidate pool: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Listing
	var droppedUnresolved, droppedInvalid int
	for rows.Next() {
		var listing domain.Listing
		// Колонки объекта сканируем в указатели: при несовпавшем JOIN они NULL.
		var propertyID *uuid.UUID
		var locality, city, state, zipCode, propertyType *string
		var size, price *float64
		var bedrooms, bathrooms *int
		var rawAmenities []byte

		if err := rows.Scan(
			&listing.ID, &listing.Status,
			&propertyID, &locality, &city, &state, &zipCode, &propertyType,
			&size, &bedrooms, &bathrooms, &price, &rawAmenities,
		); err != nil {
			repoLogger.Error("Failed to scan candidate row", err, nil)
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}

		// Шаг "drop unresolved": ссылка на объект не разрешилась по условиям
		// совпадения — кандидат молча выбывает из пула.
		if propertyID == nil {
			droppedUnresolved++
			continue
		}

		// Кандидат с невалидным amenities-документом тоже выбывает:
		// до скоринга доходят только проверенные данные.
		amenities, err := contracts.DecodeAmenities(rawAmenities)
		if err != nil {
			repoLogger.Warn("Dropping candidate with invalid amenities document", port.Fields{
				"candidate_listing_id": listing.ID,
				"error":                err.Error(),
			})
			droppedInvalid++
			continue
		}

		listing.Property = domain.Property{
			ID: *propertyID,
			Location: domain.Location{
				Locality: *locality,
				City:     *city,
				State:    *state,
				ZipCode:  *zipCode,
			},
			PropertyType: *propertyType,
			Size:         *size,
			Bedrooms:     *bedrooms,
			Bathrooms:    *bathrooms,
			Price:        *price,
			Amenities:    amenities,
		}
		candidates = append(candidates, listing)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during candidate pool iteration", err, nil)
		return nil, fmt.Errorf("error during candidate pool iteration: %w", err)
	}

	repoLogger.Debug("Candidate pool loaded.", port.Fields{
		"candidates":         len(candidates),
		"dropped_unresolved": droppedUnresolved,
		"dropped_invalid":    droppedInvalid,
	})
	return candidates, nil
}
