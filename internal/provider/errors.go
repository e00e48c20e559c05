package provider

import (
	"errors"
	"fmt"

	"github.com/frontdesigner/api/internal/models"
)

var (
	// ErrUnavailable means the provider is unknown, unconfigured or switched off
	ErrUnavailable = errors.New("provider unavailable")
	// ErrEmptyResponse means the provider answered 2xx without usable text
	ErrEmptyResponse = errors.New("provider returned no text")
	// ErrInvalidImage means the image payload could not be decoded
	ErrInvalidImage = errors.New("invalid image data")
)

// UnavailableError names the provider that could not be used
type UnavailableError struct {
	Provider models.ProviderName
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, ErrUnavailable)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// StatusError is a non-2xx answer from a provider
type StatusError struct {
	Provider   models.ProviderName
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}
