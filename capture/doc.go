// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package capture grabs one frame of what a set of cameras render.
//
// # Lifecycle
//
// A Session is idle until Capture is called. Capture records every target
// camera's current render target in a SwapTable, points the cameras at the
// session's offscreen surface and returns a Future. The host then renders a
// frame and calls Session.OnRenderImage. That call reads the surface back
// into an Image, restores every camera to exactly what it had before (nil
// included), clears the pending state and resolves the Future once.
//
//	session := capture.NewSession(display)
//	host.OnPostRender(session.OnRenderImage)
//
//	shot, err := session.Capture(cam)
//	if err != nil {
//	    return err // errors.Is(err, capture.ErrInvalidState)
//	}
//	img, err := shot.Wait(ctx)
//
// At most one capture is pending per session. A second Capture before the
// frame arrives fails with ErrCapturePending and does not disturb the first.
//
// # Surfaces
//
// The session creates its surfaces on the first Capture, sized to the display
// at that moment, through a render.Registry. They are reused afterwards and
// never resized.
//
// # Errors
//
// Precondition failures match ErrInvalidState. Readback failures and file
// write failures (*IOError, matching ErrIO) are delivered through the Future.
// Nothing is retried.
package capture
