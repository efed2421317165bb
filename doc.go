// Package ggshot captures what the cameras of a frame loop render.
//
// # Overview
//
// A capture redirects one or more cameras into an offscreen surface, waits
// for the next completed frame, reads the pixels back and restores every
// camera's original render target. The result is delivered exactly once,
// either as an in-memory image or as an image file on disk.
//
// # Quick Start
//
//	eng := engine.New(1920, 1080)
//	cam := engine.NewCamera("main", drawScene)
//	eng.AddCamera(cam)
//
//	session := capture.NewSession(eng.Display(), capture.WithFrameBarrier(eng.Exec))
//	eng.OnPostRender(session.OnRenderImage)
//
//	shot, err := session.CaptureToFile("shot.png", cam)
//	if err != nil {
//	    return err
//	}
//	go eng.Run(ctx, time.Second/60)
//	path, err := shot.Wait(ctx)
//
// # Architecture
//
//   - render: render targets, surface descriptors, surface registry, blit and readback
//   - capture: the capture session, swap table, futures and captured images
//   - engine: a small frame-synchronous host used by the CLI and tests
//
// # Logging
//
// ggshot is silent by default. See SetLogger.
package ggshot

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
