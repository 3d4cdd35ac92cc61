package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Cache loads images relative to a base directory and keeps decoded
// images for painting. It is safe for concurrent use.
type Cache struct {
	baseDir string
	fetch   func(src string) ([]byte, error)

	mu     sync.RWMutex
	images map[string]image.Image
}

func NewCache(baseDir string) *Cache {
	return &Cache{baseDir: baseDir, images: make(map[string]image.Image)}
}

// NewRemoteCache loads every non-data source through fetch, which is
// responsible for resolving relative references.
func NewRemoteCache(fetch func(src string) ([]byte, error)) *Cache {
	return &Cache{fetch: fetch, images: make(map[string]image.Image)}
}

func (c *Cache) resolve(src string) string {
	if IsDataURI(src) || filepath.IsAbs(src) || c.baseDir == "" {
		return src
	}
	return filepath.Join(c.baseDir, src)
}

// Load decodes the image at src.
func (c *Cache) Load(src string) (image.Image, error) {
	path := c.resolve(src)
	c.mu.RLock()
	img, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	var err error
	switch {
	case IsDataURI(src):
		img, err = decodeDataURI(src)
	case c.fetch != nil:
		img, err = c.decodeRemote(src)
	default:
		img, err = decodeFile(path)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}

// Dimensions returns the intrinsic pixel size of the image at src.
func (c *Cache) Dimensions(src string) (width, height int, err error) {
	img, err := c.Load(src)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func (c *Cache) decodeRemote(src string) (image.Image, error) {
	raw, err := c.fetch(src)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", src, err)
	}
	return img, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func IsDataURI(src string) bool {
	return strings.HasPrefix(src, "data:")
}

// decodeDataURI decodes base64 data: URIs.
func decodeDataURI(uri string) (image.Image, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, fmt.Errorf("unsupported data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode data URI image: %w", err)
	}
	return img, nil
}
