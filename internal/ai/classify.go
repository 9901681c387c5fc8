package ai

import (
	"errors"
	"strings"
)

// Class is the remediation category derived from a backend error message.
type Class int

const (
	// ClassGeneric keeps the original message and never blocks further actions.
	ClassGeneric Class = iota
	// ClassQuotaOrKey means the API key is missing/invalid or its quota is spent.
	ClassQuotaOrKey
	// ClassConfiguration means the backend's provider client is misconfigured.
	ClassConfiguration
)

// Classification pairs the category with the raw message it was derived from.
type Classification struct {
	Class   Class
	Message string
}

// Blocking reports whether this classification disables all AI actions until
// the user clears it. There is no automatic retry.
func (c Classification) Blocking() bool {
	return c.Class == ClassQuotaOrKey || c.Class == ClassConfiguration
}

// Classify maps a raw backend error message to a classification by substring
// matching. The matching is case-sensitive and deliberately shallow: the
// backend is the source of truth on root cause, and these are the phrases it
// is known to emit. All matching rules live here so they can change without
// touching call sites.
func Classify(message string) Classification {
	c := Classification{Class: ClassGeneric, Message: message}
	switch {
	case strings.Contains(message, "quota"),
		strings.Contains(message, "billing"),
		strings.Contains(message, "API key"):
		c.Class = ClassQuotaOrKey
	case strings.Contains(message, "proxies"):
		c.Class = ClassConfiguration
	}
	return c
}

// ActionError is the failure an AI action returns: the transport or backend
// error wrapped with its classification.
type ActionError struct {
	Classification Classification
	Err            error
}

func (e *ActionError) Error() string {
	return e.Classification.Message
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// ClassificationOf extracts the classification from an action error. Errors
// from elsewhere classify as generic with their message preserved.
func ClassificationOf(err error) Classification {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Classification
	}
	return Classification{Class: ClassGeneric, Message: err.Error()}
}
