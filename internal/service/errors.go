package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for service layer
var (
	ErrDispatch      = errors.New("email dispatch failed")
	ErrNotConfigured = errors.New("email provider not configured")
)

// DispatchKind classifies why the provider call failed
type DispatchKind string

const (
	DispatchNetwork        DispatchKind = "network"
	DispatchRejected       DispatchKind = "rejected"
	DispatchAuthentication DispatchKind = "authentication"
	DispatchQuotaExceeded  DispatchKind = "quota_exceeded"
)

// DispatchError is returned by an EmailDispatcher when the message was not accepted.
// It never carries provider credentials.
type DispatchError struct {
	Kind       DispatchKind
	StatusCode int
	Err        error
}

func (e *DispatchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("email dispatch failed (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("email dispatch failed (%s): %v", e.Kind, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Is lets callers match any DispatchError against ErrDispatch
func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatch
}
