// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import "github.com/gogpu/ggshot/render"

// Camera is a handle to something the host renders each frame.
//
// The session never creates or destroys cameras; it only points them at a
// different target for one frame. A nil target means the camera renders to
// the display. Implementations must be comparable (typically pointers)
// because the session keys its swap table by camera.
type Camera interface {
	// TargetTexture returns where the camera currently renders.
	TargetTexture() render.RenderTarget

	// SetTargetTexture points the camera at t. Nil restores display output.
	SetTargetTexture(t render.RenderTarget)
}
