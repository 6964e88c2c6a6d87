package models

// BatchResponse is the immediate response for POST /api/v1/batch/analyze.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchStatusResponse is the response for GET /api/v1/batch/:id.
type BatchStatusResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Completed int                `json:"completed"`
	Total     int                `json:"total"`
	Results   []*AnalyzeResponse `json:"results,omitempty"`
}

// BatchJob tracks an in-progress batch analysis.
type BatchJob struct {
	ID        string
	Status    string // "processing", "completed", "failed", "partial"
	Total     int
	Completed int
	Results   []*AnalyzeResponse
	CreatedAt int64 // unix timestamp
}
