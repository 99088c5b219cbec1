// Package imaging provides the pixel-level front end of the parking
// analysis pipeline: image decoding and validation, bright-line masking,
// and edge detection.
//
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Pipeline Position
//
// The rest of the system never touches raw pixels. This package reduces an
// input photograph to a boolean edge mask:
//
//	Decode -> BrightMask -> EdgeMask
//
// The mask is consumed by the detection package's Hough transform to find
// straight painted-line segments.
//
// # Error Handling
//
// Decode and DecodeBytes are the only functions here that can fail on user
// input. Both report undecodable or zero-dimension buffers via
// ErrInvalidImage; a malformed buffer must never reach the geometric
// stages.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. BrightMask and EdgeMask
// are pure functions of their inputs and can run concurrently on
// independent images.
package imaging
