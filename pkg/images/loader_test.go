package images

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCache_FileRelativeToBase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pic.png"), encodePNG(t, 3, 5), 0o644))

	c := NewCache(dir)
	w, h, err := c.Dimensions("pic.png")
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	assert.Equal(t, 5, h)

	// Cached: removing the file does not matter any more.
	require.NoError(t, os.Remove(filepath.Join(dir, "pic.png")))
	_, err = c.Load("pic.png")
	assert.NoError(t, err)
}

func TestCache_DataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, 2, 2))
	w, h, err := NewCache("").Dimensions(uri)
	require.NoError(t, err)
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
}

func TestCache_Errors(t *testing.T) {
	c := NewCache(t.TempDir())
	for _, src := range []string{
		"missing.png",
		"data:image/png;base64",
		"data:image/png;base64,!!!",
		"data:image/png;base64,aGVsbG8=",
	} {
		_, err := c.Load(src)
		assert.Error(t, err, src)
	}
}

func TestRemoteCache_FetchesOnce(t *testing.T) {
	calls := 0
	c := NewRemoteCache(func(src string) ([]byte, error) {
		calls++
		assert.Equal(t, "img/a.png", src)
		return encodePNG(t, 4, 1), nil
	})

	for i := 0; i < 2; i++ {
		w, h, err := c.Dimensions("img/a.png")
		require.NoError(t, err)
		assert.Equal(t, [2]int{4, 1}, [2]int{w, h})
	}
	assert.Equal(t, 1, calls)
}
