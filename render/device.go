// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host engine owns the device; render only receives it. TextureTarget
// records the handle it was created on so that a host readback path can find
// the queue that produced the texture.
type DeviceHandle = gpucontext.DeviceProvider

// TextureView represents a view into a texture.
type TextureView interface {
	// Destroy releases resources associated with this view.
	Destroy()
}

// Errors returned by surface construction and readback.
var (
	// ErrNilDevice is returned when a GPU surface is requested without a device.
	ErrNilDevice = errors.New("render: nil device handle")

	// ErrNotReadable is returned when pixels are read from a GPU-only target.
	ErrNotReadable = errors.New("render: target does not support CPU readback")

	// ErrNilTarget is returned when a nil target is passed to Blit or ReadPixels.
	ErrNilTarget = errors.New("render: nil target")
)

// Surface formats used when a descriptor leaves them unset.
const (
	DefaultFormat      = gputypes.TextureFormatRGBA8Unorm
	DefaultDepthFormat = gputypes.TextureFormatDepth24PlusStencil8
)

// SurfaceDescriptor describes an offscreen surface to be created.
type SurfaceDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the surface size in pixels.
	Width  int
	Height int

	// Format is the color format. Zero means DefaultFormat.
	Format gputypes.TextureFormat

	// DepthFormat is the depth attachment precision. Zero means
	// DefaultDepthFormat.
	DepthFormat gputypes.TextureFormat
}

// NewSurfaceDescriptor returns a descriptor of the given size with the
// default color and depth formats.
func NewSurfaceDescriptor(width, height int) SurfaceDescriptor {
	return SurfaceDescriptor{
		Width:       width,
		Height:      height,
		Format:      DefaultFormat,
		DepthFormat: DefaultDepthFormat,
	}
}

// withDefaults fills unset formats.
func (d SurfaceDescriptor) withDefaults() SurfaceDescriptor {
	if d.Format == gputypes.TextureFormatUndefined {
		d.Format = DefaultFormat
	}
	if d.DepthFormat == gputypes.TextureFormatUndefined {
		d.DepthFormat = DefaultDepthFormat
	}
	return d
}

// Validate reports whether the descriptor can be used to create a surface.
func (d SurfaceDescriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("render: invalid surface size %dx%d", d.Width, d.Height)
	}
	return nil
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only hosts where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns zero adapter info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
