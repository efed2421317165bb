// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrInvalidState is matched (errors.Is) by every error Capture returns
	// because a precondition does not hold. It is never retried.
	ErrInvalidState = errors.New("capture: invalid state")

	// ErrNoTargets is returned when a capture has no cameras to redirect.
	ErrNoTargets = fmt.Errorf("%w: target camera list is empty", ErrInvalidState)

	// ErrCapturePending is returned when a capture is requested while
	// another one is still waiting for its frame.
	ErrCapturePending = fmt.Errorf("%w: capture already pending", ErrInvalidState)

	// ErrSessionClosed is returned by Capture after Close, and resolves a
	// request that was still pending when the session was closed.
	ErrSessionClosed = fmt.Errorf("%w: session closed", ErrInvalidState)

	// ErrUnresolved is returned by Future.Result before the future resolves.
	ErrUnresolved = errors.New("capture: result not resolved yet")

	// ErrIO is matched by every *IOError.
	ErrIO = errors.New("capture: i/o failure")
)

// IOError reports a failure to encode or write a captured image.
// The capture itself succeeded; the cameras were already restored.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("capture: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying encode or file system error.
func (e *IOError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }
