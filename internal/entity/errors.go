package entity

import "errors"

// Domain errors
var (
	// Submit guards: these make a submit a no-op, state stays untouched
	ErrEmptyQuery      = errors.New("query is empty")
	ErrBackendOffline  = errors.New("backend is offline")
	ErrRequestInFlight = errors.New("a request is already in flight")

	// Validation errors
	ErrUnknownMode      = errors.New("unknown analysis mode")
	ErrUnknownRetriever = errors.New("unknown retriever kind")

	// Export errors
	ErrNoAnswer          = errors.New("no answer to export")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
