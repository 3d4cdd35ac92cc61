package resource

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"multicol/pkg/config"
	"multicol/pkg/layout"
	"multicol/pkg/text"
	stdnet "multicol/std/net"
)

func testConfig() *config.Config {
	return &config.Config{
		Viewport: config.ViewportConfig{Width: 100, Height: 100},
		Page:     config.PageConfig{MaxPages: 10},
		Fonts:    config.FontConfig{Size: 16},
		Scripts:  config.ScriptConfig{Enabled: true},
		Network:  config.NetworkConfig{Timeout: 5 * time.Second},
		Logger:   config.LoggerConfig{Format: "console"},
	}
}

func newPipeline(t *testing.T, cfg *config.Config) *Pipeline {
	return NewPipeline(cfg,
		WithLogger(zaptest.NewLogger(t)),
		WithMeasurer(text.FixedMeasurer{Advance: 0.5}))
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func dump(t *testing.T, f *layout.Fragment) string {
	var buf bytes.Buffer
	require.NoError(t, layout.Dump(&buf, f))
	return buf.String()
}

const columnsDoc = `<html><head><link rel="stylesheet" href="cols.css"></head><body>
<div id="mc" style="font-size: 10px; line-height: 20px">aaaaaa bbbbbb</div>
<script>document.getElementById("mc").style.columnCount = "2";</script>
</body></html>`

func TestPipeline_ScriptsAndLinkedStylesRunBeforeLayout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cols.css", "body { margin: 0 } #mc { column-gap: 0 }")
	path := writeFile(t, dir, "doc.html", columnsDoc)

	res, err := newPipeline(t, testConfig()).Run(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, res.Fragments, 1)
	out := dump(t, res.Fragments[0])
	assert.Contains(t, out, "column div#mc at (0,0) size 50x20")
	assert.Contains(t, out, "column div#mc at (50,0) size 50x20")
}

func TestPipeline_ScriptsDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cols.css", "body { margin: 0 }")
	path := writeFile(t, dir, "doc.html", columnsDoc)
	cfg := testConfig()
	cfg.Scripts.Enabled = false

	res, err := newPipeline(t, cfg).Run(context.Background(), path)

	require.NoError(t, err)
	assert.NotContains(t, dump(t, res.Fragments[0]), "column")
}

func TestPipeline_Paginates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.html", `<body style="margin: 0">
<div style="width: 40px; font-size: 10px; line-height: 20px">aaaaaa bbbbbb cccccc dddddd eeeeee</div></body>`)
	cfg := testConfig()
	cfg.Page.Height = 50

	res, err := newPipeline(t, cfg).Run(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, res.Fragments, 3)
	for _, page := range res.Fragments {
		assert.Equal(t, layout.FragmentPageBox, page.Type)
	}
}

func TestPipeline_PageLimit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.html", `<body style="margin: 0">
<div style="width: 40px; font-size: 10px; line-height: 20px">aaaaaa bbbbbb cccccc dddddd eeeeee</div></body>`)
	cfg := testConfig()
	cfg.Page.Height = 20
	cfg.Page.MaxPages = 2

	res, err := newPipeline(t, cfg).Run(context.Background(), path)

	assert.ErrorIs(t, err, layout.ErrTooManyPages)
	assert.Len(t, res.Fragments, 2)
}

func TestLoader_UnsupportedScheme(t *testing.T) {
	l := NewLoader(nil, nil)

	_, err := l.Load(context.Background(), "ftp://example.com/doc.html")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = l.Fetch(context.Background(), &Source{BaseDir: "."}, "gopher://x/y.css")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestLoader_FileURL(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.html", "<p>hi</p>")

	src, err := NewLoader(nil, nil).Load(context.Background(), "file://"+path)

	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", src.Body)
	assert.False(t, src.Remote())
	assert.Equal(t, filepath.Dir(path), src.BaseDir)
}

func TestLoader_RemoteResolvesRelativeReferences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/docs/index.html":
			_, _ = w.Write([]byte(`<link rel="stylesheet" href="site.css"><p>x</p>`))
		case "/docs/site.css":
			_, _ = w.Write([]byte("p { color: red }"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	l := NewLoader(stdnet.NewClient(5*time.Second, ""), nil)

	src, err := l.Load(context.Background(), srv.URL+"/docs/index.html")
	require.NoError(t, err)
	require.True(t, src.Remote())

	css, err := l.Fetch(context.Background(), src, "site.css")
	require.NoError(t, err)
	assert.Equal(t, "p { color: red }", string(css))
}
