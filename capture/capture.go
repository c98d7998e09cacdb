// Package capture obtains a still image from either a file upload or a
// camera device and normalizes both into a single binary photo payload.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
	"sync"
)

// ErrCameraUnavailable reports that no camera stream could be acquired
// (permission denied, no device). It is recoverable: the user retries
// or falls back to a file upload.
var ErrCameraUnavailable = errors.New("camera unavailable")

// jpegQuality matches the storefront's canvas encoding (0.9).
const jpegQuality = 90

// CapturedPhoto is a raw image payload held in session memory until it
// is uploaded or discarded. Only its storage URL is ever persisted.
type CapturedPhoto struct {
	Data []byte
	MIME string
}

// Ext returns the file extension for the photo's MIME type, used to
// build upload object keys.
func (p CapturedPhoto) Ext() string {
	switch strings.ToLower(p.MIME) {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}

// FromFile wraps file-picker bytes as a captured photo. Any image MIME
// type is accepted; the only requirement is that bytes exist.
func FromFile(raw []byte, declaredMIME string) (CapturedPhoto, error) {
	if len(raw) == 0 {
		return CapturedPhoto{}, errors.New("empty file payload")
	}
	if declaredMIME == "" {
		declaredMIME = "image/jpeg"
	}
	return CapturedPhoto{Data: raw, MIME: declaredMIME}, nil
}

// Facing selects the capture device direction.
type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

// Constraints describe the requested stream. Width and Height are
// ideal values, not hard requirements. Audio is never requested.
type Constraints struct {
	Facing Facing
	Width  int
	Height int
}

// Stream is a live camera feed. Close releases the device handle.
type Stream interface {
	ReadFrame(ctx context.Context) (image.Image, error)
	Close() error
}

// Device opens camera streams. The real implementation is supplied by
// the embedding platform; tests use a fake.
type Device interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Adapter drives a camera device: acquire a stream, grab one frame,
// encode it as JPEG, and release the device before returning. The
// device handle must never outlive the capture.
type Adapter struct {
	device Device

	mu     sync.Mutex
	facing Facing
	stream Stream
}

// NewAdapter returns an adapter preferring the given facing mode.
// An empty facing defaults to the user-facing camera.
func NewAdapter(device Device, facing Facing) *Adapter {
	if facing == "" {
		facing = FacingUser
	}
	return &Adapter{device: device, facing: facing}
}

// Facing returns the current facing mode.
func (a *Adapter) Facing() Facing {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.facing
}

// CaptureFrame opens the camera (ideal 1280x720, no audio), reads a
// single frame, encodes it at JPEG quality 90 and closes the stream.
// Any previously open stream is closed first, so two captures never
// hold two device handles at once.
func (a *Adapter) CaptureFrame(ctx context.Context) (CapturedPhoto, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closeStreamLocked()

	stream, err := a.device.Open(ctx, Constraints{
		Facing: a.facing,
		Width:  1280,
		Height: 720,
	})
	if err != nil {
		return CapturedPhoto{}, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	a.stream = stream

	frame, err := stream.ReadFrame(ctx)
	a.closeStreamLocked()
	if err != nil {
		return CapturedPhoto{}, fmt.Errorf("%w: reading frame: %v", ErrCameraUnavailable, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return CapturedPhoto{}, fmt.Errorf("encoding frame: %w", err)
	}

	return CapturedPhoto{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// SwitchFacing tears down any open stream and flips between the
// user-facing and environment-facing camera. The next capture reopens
// the device with the new facing.
func (a *Adapter) SwitchFacing() Facing {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closeStreamLocked()
	if a.facing == FacingUser {
		a.facing = FacingEnvironment
	} else {
		a.facing = FacingUser
	}
	return a.facing
}

// Close releases the device handle if a stream is still open. Called
// when the capture UI is dismissed.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeStreamLocked()
}

func (a *Adapter) closeStreamLocked() {
	if a.stream != nil {
		a.stream.Close()
		a.stream = nil
	}
}
