// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package engine is a small frame-synchronous host for captures.
//
// It stands in for the render loop of a real engine: cameras draw into
// render targets, a backbuffer is presented to a display, and post-render
// hooks are registered explicitly rather than discovered by name.
//
//	eng := engine.New(1280, 720)
//	cam := engine.NewCamera("main", func(t render.RenderTarget, frame uint64) {
//	    // draw the scene into t
//	})
//	eng.AddCamera(cam)
//	eng.OnPostRender(session.OnRenderImage)
//	eng.RenderFrame()
package engine
