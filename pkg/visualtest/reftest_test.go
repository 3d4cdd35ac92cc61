package visualtest

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func TestCompare(t *testing.T) {
	shifted := solid(10, 10, red)
	shifted.Set(4, 4, blue)
	expected := solid(10, 10, red)
	expected.Set(5, 4, blue)

	tests := []struct {
		name     string
		actual   image.Image
		expected image.Image
		opts     CompareOptions
		match    bool
		differed int
	}{
		{"identical", solid(10, 10, red), solid(10, 10, red), DefaultOptions(), true, 0},
		{"within tolerance", solid(10, 10, color.RGBA{254, 1, 0, 255}), solid(10, 10, red), DefaultOptions(), true, 0},
		{"different", solid(10, 10, blue), solid(10, 10, red), DefaultOptions(), false, 100},
		{"shifted pixel", shifted, expected, DefaultOptions(), false, 2},
		{"shifted pixel with fuzz", shifted, expected, CompareOptions{FuzzyRadius: 1}, true, 0},
		{"under percent budget", shifted, expected, CompareOptions{MaxDifferentPercent: 5}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compare(tt.actual, tt.expected, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.match, res.Match)
			assert.Equal(t, tt.differed, res.DifferentPixels)
		})
	}
}

func TestCompare_BoundsMismatch(t *testing.T) {
	_, err := Compare(solid(2, 2, red), solid(3, 2, red), DefaultOptions())
	assert.ErrorContains(t, err, "bounds differ")
}

func TestCompare_DiffImage(t *testing.T) {
	actual := solid(4, 4, color.White)
	actual.Set(1, 1, color.Black)

	res, err := Compare(actual, solid(4, 4, color.White), CompareOptions{Diff: true})

	require.NoError(t, err)
	require.NotNil(t, res.Diff)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, res.Diff.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, res.Diff.RGBAAt(0, 0))
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, img image.Image) string {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		require.NoError(t, err)
		defer f.Close()
		require.NoError(t, png.Encode(f, img))
		return path
	}

	res, err := CompareFiles(write("a.png", solid(3, 3, blue)), write("b.png", solid(3, 3, blue)), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Match)

	_, err = CompareFiles(filepath.Join(dir, "missing.png"), write("c.png", solid(3, 3, blue)), DefaultOptions())
	assert.ErrorContains(t, err, "actual image")
}

// Each reference draws what the multicol container should look like
// without using columns.
func TestReferences(t *testing.T) {
	tests := []struct {
		name      string
		test, ref string
	}{
		{
			name: "two balanced columns",
			test: `<html><body style="margin: 0">
<div style="column-count: 2; column-gap: 0; width: 100px">
<div style="height: 20px; background: red"></div>
<div style="height: 20px; background: blue"></div>
</div></body></html>`,
			ref: `<html><body style="margin: 0">
<div style="width: 50px; height: 20px; background: red; border-right: 50px solid blue"></div>
</body></html>`,
		},
		{
			name: "fixed height fills each column",
			test: `<html><body style="margin: 0">
<div style="column-count: 2; column-gap: 0; width: 60px; height: 10px">
<div style="height: 10px; background: red"></div>
<div style="height: 10px; background: blue"></div>
</div></body></html>`,
			ref: `<html><body style="margin: 0">
<div style="width: 30px; height: 10px; background: red; border-right: 30px solid blue"></div>
</body></html>`,
		},
		{
			name: "column gap leaves the background visible",
			test: `<html><body style="margin: 0">
<div style="column-count: 2; column-gap: 20px; width: 100px; background: lime">
<div style="height: 20px; background: red"></div>
<div style="height: 20px; background: red"></div>
</div></body></html>`,
			ref: `<html><body style="margin: 0">
<div style="width: 20px; height: 20px; background: lime; border-left: 40px solid red; border-right: 40px solid red"></div>
</body></html>`,
		},
	}

	r := Renderer{Width: 120, Height: 40}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderHTML(context.Background(), tt.test)
			require.NoError(t, err)
			want, err := r.RenderHTML(context.Background(), tt.ref)
			require.NoError(t, err)
			require.Len(t, got, 1)
			require.Len(t, want, 1)

			res, err := Compare(got[0], want[0], DefaultOptions())
			require.NoError(t, err)
			assert.True(t, res.Match, "%d of %d pixels differ", res.DifferentPixels, res.TotalPixels)
		})
	}
}

func TestRenderer_Paginates(t *testing.T) {
	r := Renderer{Width: 50, Height: 30, PageHeight: 30}
	pages, err := r.RenderHTML(context.Background(), `<html><body style="margin: 0">
<div style="height: 80px; background: red"></div></body></html>`)

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, image.Rect(0, 0, 50, 30), pages[0].Bounds())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(pages[2].At(10, 5)))
}
