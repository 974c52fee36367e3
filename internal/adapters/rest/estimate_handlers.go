package rest

import (
	"errors"
	"net/http"

	"estimation-service/internal/contextkeys"
	"estimation-service/internal/core/domain"
	"estimation-service/internal/core/port"
	"estimation-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EstimateHandler struct {
	estimatePriceUC usecases_port.EstimatePriceUseCase
}

func NewEstimateHandler(estimatePriceUC usecases_port.EstimatePriceUseCase) *EstimateHandler {
	return &EstimateHandler{
		estimatePriceUC: estimatePriceUC,
	}
}

// GetEstimate обрабатывает GET /api/v1/listings/{listingID}/estimate
func (h *EstimateHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	// Шаг 1: Получаем и парсим listingID из URL.
	// Невалидный id не может указывать на существующее объявление,
	// поэтому для клиента это тот же "not found".
	listingIDStr := chi.URLParam(r, "listingID")
	listingID, err := uuid.Parse(listingIDStr)
	if err != nil {
		logger.Warn("Invalid listing ID format", port.Fields{"listing_id": listingIDStr})
		WriteJSONError(w, http.StatusNotFound, "Listing not found")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":    "GetEstimate",
		"listing_id": listingIDStr,
	})
	handlerLogger.Debug("Processing estimate request", nil)

	// Шаг 2: Вызываем use-case.
	result, err := h.estimatePriceUC.Execute(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			handlerLogger.Warn("Listing not found", nil)
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to calculate estimate")
		return
	}

	// Шаг 3: Маппим результат в DTO для ответа.
	response := EstimateResponse{
		EstimatedPrice:    result.EstimatedPrice,
		EstimatedRent:     result.EstimatedRent,
		SimilarProperties: make([]SimilarPropertyResponse, len(result.Candidates)),
		Message:           result.Message,
	}
	for i, candidate := range result.Candidates {
		response.SimilarProperties[i] = SimilarPropertyResponse{
			PropertyID: candidate.PropertyID.String(),
			ListingID:  candidate.ListingID.String(),
			Price:      candidate.Price,
			Score:      candidate.Score,
		}
	}

	handlerLogger.Info("Estimate request served", port.Fields{
		"candidates": len(result.Candidates),
	})

	// Шаг 4: Отправляем JSON.
	RespondWithJSON(w, http.StatusOK, response)
}
