package models

type SummarizeURLRequest struct {
	URL string `json:"url"`
}

type SummarizeURLResponse struct {
	Summary string `json:"summary"`
}

// InferenceParams are the sampling settings sent with every summarization call.
type InferenceParams struct {
	Model         string
	MaxTokens     int
	RepeatPenalty float64
	TopK          int
	Temperature   float64
	TopP          float64
}
