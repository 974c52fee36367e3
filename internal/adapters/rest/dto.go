package rest

// SimilarPropertyResponse - DTO одного кандидата в выдаче.
// Цена нужна, чтобы вызывающая сторона могла сама перепроверить среднее.
type SimilarPropertyResponse struct {
	PropertyID string  `json:"propertyId"`
	ListingID  string  `json:"listingId"`
	Price      float64 `json:"price"`
	Score      float64 `json:"score"`
}

// EstimateResponse - DTO ответа на запрос оценки.
// Заполнено не более одного из полей estimatedPrice / estimatedRent.
type EstimateResponse struct {
	EstimatedPrice    *float64                  `json:"estimatedPrice"`
	EstimatedRent     *float64                  `json:"estimatedRent"`
	SimilarProperties []SimilarPropertyResponse `json:"similarProperties"`
	Message           string                    `json:"message"`
}
