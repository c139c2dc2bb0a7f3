package services

import "errors"

var (
	// ErrURLRequired is returned when a bookmark is submitted without a URL.
	ErrURLRequired = errors.New("URL is required")

	// ErrFetchFailed wraps transport failures while loading a page.
	ErrFetchFailed = errors.New("failed to fetch page")

	// ErrInvalidEncoding is returned when a page body is not valid UTF-8.
	ErrInvalidEncoding = errors.New("page body is not valid UTF-8")

	// ErrInference wraps failures of the language model call.
	ErrInference = errors.New("failed to generate summary from LLM")
)
