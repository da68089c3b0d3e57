package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagValidation marks errors caused by invalid request parameters
	ErrTagValidation = goerr.NewTag("validation")

	// ErrTagUpstream marks errors reported by the conversion provider in its response body
	ErrTagUpstream = goerr.NewTag("upstream")

	// ErrTagTransport marks failures to reach the provider or to read its response
	ErrTagTransport = goerr.NewTag("transport")
)
