// Package assets memoizes image and font handles loaded through the graphics
// backend.
//
// Entries are loaded at most once per key and never evicted. Failures are
// memoized too, so a missing file costs one load attempt per process.
package assets

import (
	"fmt"
	"image"
)

// Texture is an image handle owned by the graphics backend
type Texture interface {
	Bounds() image.Rectangle
}

// Face is a font face handle owned by the graphics backend
type Face any

// Loader is the backend's load capability
type Loader interface {
	LoadImage(path string) (Texture, error)
	LoadFont(path string, size float64) (Face, error)
}

// Kind names the two caches
type Kind string

const (
	KindImage Kind = "image"
	KindFont  Kind = "font"
)

// FontKey identifies one font face
type FontKey struct {
	Path string
	Size uint16
}

func (k FontKey) String() string {
	return fmt.Sprintf("%s@%d", k.Path, k.Size)
}

// LoadError reports an asset that could not be loaded
type LoadError struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %s: %v", e.Kind, e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Cache holds the image and font caches. It is owned by the render loop and
// is not safe for concurrent use.
type Cache struct {
	loader Loader
	roots  Roots

	images map[string]Texture
	fonts  map[FontKey]Face
	failed map[string]*LoadError

	loads int
}

// NewCache creates an empty cache
func NewCache(loader Loader, roots Roots) *Cache {
	return &Cache{
		loader: loader,
		roots:  roots,
		images: make(map[string]Texture),
		fonts:  make(map[FontKey]Face),
		failed: make(map[string]*LoadError),
	}
}

// Roots returns the roots references are resolved against
func (c *Cache) Roots() Roots {
	return c.roots
}

// Image resolves an image reference to a texture, loading it on first use
func (c *Cache) Image(ref string) (Texture, error) {
	key := c.roots.Image(ref)
	if tex, ok := c.images[key]; ok {
		return tex, nil
	}
	failKey := string(KindImage) + ":" + key
	if err, ok := c.failed[failKey]; ok {
		return nil, err
	}

	c.loads++
	tex, err := c.loader.LoadImage(key)
	if err != nil {
		lerr := &LoadError{Kind: KindImage, Key: key, Err: err}
		c.failed[failKey] = lerr
		return nil, lerr
	}
	c.images[key] = tex
	return tex, nil
}

// Font resolves a font reference at a point size, loading it on first use
func (c *Cache) Font(ref string, size uint16) (Face, error) {
	key := FontKey{Path: c.roots.Font(ref), Size: size}
	if face, ok := c.fonts[key]; ok {
		return face, nil
	}
	failKey := string(KindFont) + ":" + key.String()
	if err, ok := c.failed[failKey]; ok {
		return nil, err
	}

	c.loads++
	face, err := c.loader.LoadFont(key.Path, float64(size))
	if err != nil {
		lerr := &LoadError{Kind: KindFont, Key: key.String(), Err: err}
		c.failed[failKey] = lerr
		return nil, lerr
	}
	c.fonts[key] = face
	return face, nil
}

// Stats reports cache occupancy
type Stats struct {
	Images int
	Fonts  int
	Failed int
	Loads  int
}

// Stats returns the current cache occupancy
func (c *Cache) Stats() Stats {
	return Stats{
		Images: len(c.images),
		Fonts:  len(c.fonts),
		Failed: len(c.failed),
		Loads:  c.loads,
	}
}
