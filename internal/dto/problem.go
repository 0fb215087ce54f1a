package dto

import "time"

// ProblemContentType is the media type of every error response.
const ProblemContentType = "application/problem+json"

// Problem is the uniform error body returned for every non-2xx response.
type Problem struct {
	Type      string              `json:"type"`
	Title     string              `json:"title"`
	Status    int                 `json:"status"`
	Detail    string              `json:"detail"`
	Instance  string              `json:"instance"`
	TraceID   string              `json:"traceId,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
	Errors    []ProblemFieldError `json:"errors,omitempty"`
}

type ProblemFieldError struct {
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue"`
	Message       string `json:"message"`
	Code          string `json:"code"`
}
