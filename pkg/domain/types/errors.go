package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagNotFound marks errors for a missing release, incident, session or token
	ErrTagNotFound = goerr.NewTag("not_found")
	// ErrTagInvalidInput marks errors for malformed create/update input
	ErrTagInvalidInput = goerr.NewTag("invalid_input")
	// ErrTagBusy marks a chat submit while a request is already in flight
	ErrTagBusy = goerr.NewTag("busy")
	// ErrTagLLM marks a failed chat completion
	ErrTagLLM = goerr.NewTag("llm")
)
