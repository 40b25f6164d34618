package models

type ClassificationRequest struct {
	Text string `json:"text"`
}

type ClassificationResult struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

type EmotionCatalogResponse struct {
	Emotions   []string `json:"emotions"`
	TotalCount int      `json:"total_count"`
}

type HealthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
