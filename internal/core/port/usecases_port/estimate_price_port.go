package usecases_port

import (
	"context"

	"estimation-service/internal/core/domain"

	"github.com/google/uuid"
)

// EstimatePriceUseCase - порт входа для оценки стоимости по аналогам.
type EstimatePriceUseCase interface {
	Execute(ctx context.Context, listingID uuid.UUID) (*domain.EstimateResult, error)
}
