// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import "github.com/gogpu/ggshot/render"

// SwapTable remembers the render target each camera had before it was
// redirected, so the exact prior value (including nil) can be put back.
//
// A SwapTable is not safe for concurrent use; Session guards it.
type SwapTable struct {
	prior map[Camera]render.RenderTarget
	order []Camera
}

// NewSwapTable returns an empty table.
func NewSwapTable() *SwapTable {
	return &SwapTable{prior: make(map[Camera]render.RenderTarget)}
}

// Redirect records each camera's current target and points it at surface.
// A camera that is already recorded keeps its first prior value, so listing
// a camera twice, or redirecting it again, never loses the original.
// Nil cameras are ignored.
func (t *SwapTable) Redirect(cams []Camera, surface render.RenderTarget) {
	for _, c := range cams {
		if c == nil {
			continue
		}
		if _, ok := t.prior[c]; !ok {
			t.prior[c] = c.TargetTexture()
			t.order = append(t.order, c)
		}
		c.SetTargetTexture(surface)
	}
}

// Restore puts back the recorded target of the given cameras and forgets
// them. With no arguments every recorded camera is restored, in the order it
// was redirected. Cameras that were never recorded are skipped.
func (t *SwapTable) Restore(cams ...Camera) (restored int) {
	if len(cams) == 0 {
		cams = t.order
	}
	for _, c := range cams {
		prior, ok := t.prior[c]
		if !ok {
			continue
		}
		c.SetTargetTexture(prior)
		delete(t.prior, c)
		restored++
	}
	t.compact()
	return restored
}

// Prior returns the recorded target of c and whether c is recorded.
func (t *SwapTable) Prior(c Camera) (render.RenderTarget, bool) {
	prior, ok := t.prior[c]
	return prior, ok
}

// Len returns the number of recorded cameras.
func (t *SwapTable) Len() int {
	return len(t.prior)
}

// compact drops restored cameras from the redirect order.
func (t *SwapTable) compact() {
	kept := t.order[:0]
	for _, c := range t.order {
		if _, ok := t.prior[c]; ok {
			kept = append(kept, c)
		}
	}
	clear(t.order[len(kept):])
	t.order = kept
}
