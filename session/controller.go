// Package session orchestrates one user's try-on interaction: photo
// capture, upload, generation, result and feedback, as an explicit
// state machine over the pipeline collaborators.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/styleshop/fitting-room/capture"
	"github.com/styleshop/fitting-room/generator"
	"github.com/styleshop/fitting-room/models"
	"github.com/styleshop/fitting-room/photostore"
	"github.com/styleshop/fitting-room/recorder"
	"github.com/styleshop/fitting-room/shop"
)

// ErrInvalidTransition reports an operation called from a state that
// does not allow it, e.g. feedback before a result exists.
var ErrInvalidTransition = errors.New("invalid session transition")

// ErrNoGarment reports a start with an empty garment list.
var ErrNoGarment = errors.New("no garment selected")

// Controller sequences the try-on pipeline for a single session.
// Exactly one session is active per user interaction; starting a new
// try-on while one is open re-targets it. The mutex is released during
// the blocking upload and generation calls, so state stays observable
// and a second submit can be rejected while one is in flight.
type Controller struct {
	shop     *shop.Store
	uploader photostore.Uploader
	gen      generator.Generator
	rec      *recorder.Recorder
	camera   *capture.Adapter

	mu         sync.Mutex
	state      State
	processing bool
	garments   []models.Product
	outfit     bool
	photo      *capture.CapturedPhoto
	photoRef   photostore.StoredPhotoRef
	resultURL  string
	lastErr    error
}

// NewController wires the pipeline collaborators. The camera adapter
// may be nil when capture happens upstream (file upload only).
func NewController(store *shop.Store, uploader photostore.Uploader, gen generator.Generator, rec *recorder.Recorder, camera *capture.Adapter) *Controller {
	return &Controller{
		shop:     store,
		uploader: uploader,
		gen:      gen,
		rec:      rec,
		camera:   camera,
		state:    StateIdle,
	}
}

// Start opens (or re-targets) the session for the given garment(s) and
// moves to AwaitingPhoto. Prior result and error are cleared and every
// garment is recorded as tried; the history insert is idempotent, so
// re-trying a garment does not duplicate its entry.
func (c *Controller) Start(garments ...models.Product) error {
	if len(garments) == 0 {
		return ErrNoGarment
	}

	c.mu.Lock()
	c.garments = append([]models.Product(nil), garments...)
	c.outfit = len(garments) > 1
	c.photo = nil
	c.photoRef = photostore.StoredPhotoRef{}
	c.resultURL = ""
	c.lastErr = nil
	c.processing = false
	c.state = StateAwaitingPhoto
	c.mu.Unlock()

	for _, g := range garments {
		c.shop.AddTriedProduct(g)
	}
	return nil
}

// SubmitPhoto runs the upload and generation stages. Only one submit
// may be in flight; a second call while Uploading or Generating is a
// no-op. On failure at either stage the session returns to
// AwaitingPhoto with the classified error attached and the photo
// retained, so the user can retry without recapturing. Closing the
// session while a submit is in flight abandons it at the next stage
// boundary: a pending generation is never issued and a late result is
// discarded.
func (c *Controller) SubmitPhoto(ctx context.Context, photo capture.CapturedPhoto) error {
	c.mu.Lock()
	if c.processing {
		c.mu.Unlock()
		return nil
	}
	if c.state != StateAwaitingPhoto {
		defer c.mu.Unlock()
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, c.state)
	}
	c.processing = true
	c.photo = &photo
	c.lastErr = nil
	c.state = StateUploading
	c.mu.Unlock()

	ref, err := c.uploader.Upload(ctx, photo)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	if c.state == StateClosed {
		// Session was closed while uploading; never issue the generation.
		c.processing = false
		c.mu.Unlock()
		return nil
	}
	c.photoRef = ref
	c.state = StateGenerating
	garments := append([]models.Product(nil), c.garments...)
	c.mu.Unlock()

	resultURL, err := generateOutfit(ctx, c.gen, ref.URL, garments)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.processing = false
	if c.state == StateClosed {
		// Session was closed while generating; the response is abandoned.
		return nil
	}
	c.resultURL = resultURL
	c.state = StateResult
	return nil
}

// generateOutfit runs the generator once per garment, feeding each
// result back in as the subject photo so an outfit composes into a
// single combined visualization.
func generateOutfit(ctx context.Context, gen generator.Generator, userPhotoURL string, garments []models.Product) (string, error) {
	current := userPhotoURL
	for _, g := range garments {
		resultURL, err := gen.Generate(ctx, current, g.Image, g.Name)
		if err != nil {
			return "", err
		}
		current = resultURL
	}
	return current, nil
}

// Feedback records the user's judgment on the displayed result and
// closes the session. Valid only from Result. A persistence failure
// keeps the session in Result with the result still shown; the user
// has already seen their image.
func (c *Controller) Feedback(ctx context.Context, feedback models.Feedback) error {
	c.mu.Lock()
	if c.state != StateResult {
		defer c.mu.Unlock()
		return fmt.Errorf("%w: feedback from %s", ErrInvalidTransition, c.state)
	}
	userPhotoURL := c.photoRef.URL
	productURL := c.garments[0].Image
	productName := garmentName(c.garments)
	resultURL := c.resultURL
	c.mu.Unlock()

	err := c.rec.Record(ctx, userPhotoURL, productURL, productName, resultURL, feedback)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return err
	}

	c.Close()
	return nil
}

// Retry discards the result and returns to AwaitingPhoto, keeping the
// same garment target and captured photo. Valid only from Result.
func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateResult {
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, c.state)
	}
	c.resultURL = ""
	c.lastErr = nil
	c.state = StateAwaitingPhoto
	return nil
}

// Close tears down the session from any state: camera resources are
// released, transient state is cleared, and an outfit session clears
// the shop selection set.
func (c *Controller) Close() {
	if c.camera != nil {
		c.camera.Close()
	}

	c.mu.Lock()
	outfit := c.outfit
	c.photo = nil
	c.photoRef = photostore.StoredPhotoRef{}
	c.resultURL = ""
	c.lastErr = nil
	c.processing = false
	c.state = StateClosed
	c.mu.Unlock()

	if outfit {
		c.shop.ClearSelectedProducts()
	}
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	c.processing = false
	if c.state != StateClosed {
		c.state = StateAwaitingPhoto
	}
}

// garmentName is the recorded product name; an outfit joins the
// garment names.
func garmentName(garments []models.Product) string {
	names := make([]string, len(garments))
	for i, g := range garments {
		names[i] = g.Name
	}
	return strings.Join(names, " + ")
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Processing reports whether a submit is in flight.
func (c *Controller) Processing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

// ResultURL returns the generated image URL, empty outside Result.
func (c *Controller) ResultURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resultURL
}

// Err returns the error attached to the session, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Photo returns the retained captured photo, nil if none is held.
func (c *Controller) Photo() *capture.CapturedPhoto {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.photo
}

// Garments returns the session's target garment(s).
func (c *Controller) Garments() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Product(nil), c.garments...)
}

// Outfit reports whether this is a multi-garment session.
func (c *Controller) Outfit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outfit
}
