// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import "github.com/gogpu/ggshot/internal/imageio"

// CaptureToFile captures the next frame like Capture and writes it to path.
//
// The format follows the extension: .bmp, .tif and .tiff are honored and
// anything else is written as PNG. Encoding and writing happen on the
// goroutine that delivers the frame, before the returned future resolves,
// so the file is complete and closed once the path is observed. A failed
// write resolves the future with an *IOError; the cameras have already been
// restored by then and the capture is not retried.
func (s *Session) CaptureToFile(path string, cams ...Camera) (*Future[string], error) {
	shot, err := s.Capture(cams...)
	if err != nil {
		return nil, err
	}

	out := newFuture[string]()
	shot.then(func(img *Image, err error) {
		if err != nil {
			out.resolve("", err)
			return
		}
		if err := imageio.WriteFile(path, img); err != nil {
			s.logger().Warn("capture: write failed", "path", path, "err", err)
			out.resolve("", &IOError{Op: "write", Path: path, Err: err})
			return
		}
		s.logger().Info("capture: file written", "path", path,
			"format", imageio.FormatForPath(path))
		out.resolve(path, nil)
	})
	return out, nil
}
