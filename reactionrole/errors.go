package reactionrole

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDefinitions is returned when text holds no role definition.
	ErrNoDefinitions = errors.New("no reaction role definitions found")

	// ErrUnknownChannel is returned when the target channel can't be
	// fetched or belongs to another guild.
	ErrUnknownChannel = errors.New("unknown channel")
)

// ResolutionError reports a role that could not be looked up or created.
type ResolutionError struct {
	Name string
	Op   string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving role %q: %s: %v", e.Name, e.Op, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ReactError reports an emoji that could not be attached to a board.
type ReactError struct {
	Emoji string
	Err   error
}

func (e *ReactError) Error() string {
	return fmt.Sprintf("reacting with %s: %v", e.Emoji, e.Err)
}

func (e *ReactError) Unwrap() error { return e.Err }

// SkipError is returned by Reconcile when a reaction does not change any
// membership.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "reaction skipped: " + e.Reason
}

func skip(reason string) error {
	return &SkipError{Reason: reason}
}
