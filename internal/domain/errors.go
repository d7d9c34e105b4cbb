package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates missing credentials or malformed input.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownModel indicates a model without a pricing entry.
	ErrUnknownModel = errors.New("unknown model")

	// ErrProvider indicates a non-success response from a backend.
	ErrProvider = errors.New("provider error")

	// ErrMalformedResponse indicates a backend response the adapter cannot normalize.
	ErrMalformedResponse = errors.New("malformed response")
)

// ConfigurationError is reported before any network call is made.
type ConfigurationError struct {
	Reason string
}

// NewConfigurationError formats a ConfigurationError.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// UnknownModelError is returned by a pricing lookup miss.
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model: %s", e.Model)
}

// Is matches ErrUnknownModel.
func (e *UnknownModelError) Is(target error) bool {
	return target == ErrUnknownModel
}

// ProviderError carries the upstream status of a failed backend call.
// StatusCode is 0 when the request never produced an HTTP response.
type ProviderError struct {
	Provider   string
	Model      string
	Shape      APIShape
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s returned status %d for %s/%s: %s",
			e.Provider, e.StatusCode, e.Model, e.Shape, e.Message)
	}
	return fmt.Sprintf("provider %s call failed for %s/%s: %s", e.Provider, e.Model, e.Shape, e.Message)
}

// Is matches ErrProvider.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when usage fields are missing or invalid.
type MalformedResponseError struct {
	Model  string
	Shape  APIShape
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response for %s: %s", e.Shape, e.Model, e.Reason)
}

// Is matches ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
