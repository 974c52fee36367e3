package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"estimation-service/internal/contextkeys"
	"estimation-service/internal/core/domain"
	"estimation-service/internal/core/port"

	"github.com/google/uuid"
)

// Сообщения для пользователя в теле ответа.
const (
	msgEstimateReady       = "Estimate calculated based on %d similar properties"
	msgNotEnoughCandidates = "Not enough similar properties found to calculate an estimate"
)

// EstimatePriceUseCase оценивает стоимость объявления по пулу аналогов:
// загрузка цели и кандидатов, скоринг, ранжирование, среднее по ценам.
type EstimatePriceUseCase struct {
	listingStore port.ListingStorePort
}

func NewEstimatePriceUseCase(listingStore port.ListingStorePort) *EstimatePriceUseCase {
	return &EstimatePriceUseCase{
		listingStore: listingStore,
	}
}

func (uc *EstimatePriceUseCase) Execute(ctx context.Context, listingID uuid.UUID) (*domain.EstimateResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "EstimatePrice",
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	// Шаг 1: Загружаем целевое объявление вместе с объектом недвижимости.
	// Если его нет — это терминальная ошибка, оценка не считается.
	target, err := uc.listingStore.GetListingByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Warn("Target listing not found", nil)
			return nil, err
		}
		ucLogger.Error("Failed to load target listing", err, nil)
		return nil, fmt.Errorf("failed to load target listing: %w", err)
	}

	// Шаг 2: Забираем пул кандидатов: точное совпадение по четырем полям
	// локации и по типу предложения, только active/verified, без самого
	// целевого объявления.
	criteria := domain.ComparableCriteria{
		ExcludeListingID: target.ID,
		Location:         target.Property.Location,
		PropertyType:     target.Property.PropertyType,
		Statuses:         domain.CandidateStatuses(),
	}
	candidates, err := uc.listingStore.FindComparableListings(ctx, criteria)
	if err != nil {
		ucLogger.Error("Failed to load candidate pool", err, nil)
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	// Шаг 3: Пустой пул — это не ошибка, а валидный ответ без оценки.
	if len(candidates) == 0 {
		ucLogger.Info("No comparable listings found, returning empty estimate", nil)
		return &domain.EstimateResult{
			Candidates: []domain.ScoredCandidate{},
			Message:    msgNotEnoughCandidates,
		}, nil
	}

	// Шаг 4: Считаем схожесть каждого кандидата и заодно сумму цен.
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	var totalPrice float64
	for _, candidate := range candidates {
		scored = append(scored, domain.ScoredCandidate{
			ListingID:  candidate.ID,
			PropertyID: candidate.Property.ID,
			Price:      candidate.Property.Price,
			Score:      domain.SimilarityScore(target.Property, candidate.Property),
		})
		totalPrice += candidate.Property.Price
	}

	// Шаг 5: Сортируем по убыванию схожести. Порядок нужен только для
	// выдачи — среднее считается по ВСЕМ кандидатам, без отсечения топ-N.
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	meanPrice := totalPrice / float64(len(scored))

	// Шаг 6: Для продажи заполняем цену, для всего остального — арендную
	// ставку. Оба поля сразу не заполняются никогда.
	result := &domain.EstimateResult{
		Candidates: scored,
		Message:    fmt.Sprintf(msgEstimateReady, len(scored)),
	}
	if target.Property.PropertyType == domain.PropertyTypeSale {
		result.EstimatedPrice = &meanPrice
	} else {
		result.EstimatedRent = &meanPrice
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"candidates_scored": len(scored),
		"mean_price":        meanPrice,
	})
	return result, nil
}
