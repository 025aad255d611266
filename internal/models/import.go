package models

import "time"

// ImportRowError describes a single rejected row in a question import.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportSummary struct {
	TotalRows        int              `json:"total_rows"`
	SuccessCount     int              `json:"success_count"`
	ErrorCount       int              `json:"error_count"`
	CreatedQuestions []string         `json:"created_questions"`
	Errors           []ImportRowError `json:"errors,omitempty"`
	ProcessingTime   time.Duration    `json:"processing_time"`
}
