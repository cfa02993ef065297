// Package render defines the GPU-facing boundary of fontatlas.
//
// The engine core never talks to a graphics API directly; it consumes
// the [Backend] interface: bind one atlas texture, build one quad batch,
// submit it. This keeps the number of texture binds per draw call bound
// by the number of distinct atlas pages touched, not by glyph count.
//
// Two implementations ship with the module:
//   - [SoftwareBackend]: CPU compositing into an RGBA pixmap, for tests
//     and headless use.
//   - backend/ebiten: real GPU submission through Ebitengine.
//
// Hosts that own a GPU device hand it to passes through [DeviceHandle],
// the gpucontext device-provider interface.
package render
