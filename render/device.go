// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/frame"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so any host in the
// gpucontext ecosystem can hand its device to a render index as a
// frame.Driver without adapters.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle without a device.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// HasGPU reports whether h carries a usable GPU device.
func HasGPU(h DeviceHandle) bool {
	return h != nil && h.Device() != nil
}

// CPUDriver returns a driver named name backed by NullDeviceHandle.
func CPUDriver(name string) *frame.Driver {
	return &frame.Driver{Name: frame.NewToken(name), Device: NullDeviceHandle{}}
}

// FirstGPU returns the first driver in drivers with a GPU device, or nil.
func FirstGPU(drivers frame.Drivers) *frame.Driver {
	for _, d := range drivers {
		if d != nil && HasGPU(d.Device) {
			return d
		}
	}
	return nil
}
