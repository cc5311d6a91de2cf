package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfiguration = errors.New("configuration error")
	ErrRemoteStore   = errors.New("remote store error")
	ErrDelivery      = errors.New("delivery error")
)

// ValidationError is a user error on a single input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError reports a deployment setting that is missing or unusable.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return e.Setting + " is not set"
	}
	return e.Setting + " " + e.Reason
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// StoreError wraps a failed call to the row or document store.
type StoreError struct {
	Store string
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Store, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool {
	return target == ErrRemoteStore
}

// DeliveryError wraps a failed notification send.
type DeliveryError struct {
	Template  string
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s to %s: %v", e.Template, e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Is(target error) bool {
	return target == ErrDelivery
}
