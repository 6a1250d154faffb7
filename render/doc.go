// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the backend side of a frame: device handles,
// render targets, retained scenes, the software renderer and a render
// delegate that commits staged scenes into resident drawables.
//
// # Key Principle
//
// The engine RECEIVES device handles from the host application, it does
// NOT create them. A DeviceHandle travels from the render index into the
// task context through frame.TokenDrivers; tasks pick their renderer from
// it with SelectRenderer.
//
// # Resource Lifecycle
//
// The Delegate separates staging from residency:
//
//   - During discovery the index calls Stage (or Discard) for every scene
//     object that changed.
//   - During commit the engine calls CommitResources, which promotes the
//     staged scenes, evicts objects the change tracker no longer tracks and
//     records the committed scene version.
//   - During execute tasks read Drawables, which only ever returns
//     committed data.
//
// Reading Drawables before the commit phase returns the previous frame's
// state, which is why draw tasks bind the delegate in Prepare and read it
// in Execute.
//
// # Usage
//
//	delegate := render.NewDelegate()
//	scene := render.NewScene()
//	scene.SetFillColor(color.RGBA{R: 255, A: 255})
//	scene.Circle(100, 100, 50)
//	scene.Fill()
//
//	delegate.Stage("/world/ball", scene, 0)
//	delegate.CommitResources(nil) // no tracker: commit everything staged
//
//	target := render.NewPixmapTarget(200, 200)
//	renderer := render.NewSoftwareRenderer()
//	_ = renderer.Render(target, delegate.Drawables())
package render
