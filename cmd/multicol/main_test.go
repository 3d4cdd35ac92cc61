package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `<html><body style="margin: 0">
<div style="column-count: 2; column-gap: 0; width: 200px; height: 40px; background: silver"></div>
<p style="margin: 0; height: 100px">tail</p>
</body></html>`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.html")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "multicol version dev\n", out.String())
}

func TestDump(t *testing.T) {
	out, err := executeWithConfig(t, "", "dump", "--width", "300", writeDoc(t))

	require.NoError(t, err)
	assert.Contains(t, out, "box div at (0,0) size 200x40")
}

func TestDump_Paginated(t *testing.T) {
	out, err := executeWithConfig(t, "", "dump", "--page-height", "60", writeDoc(t))

	require.NoError(t, err)
	assert.Contains(t, out, "page 1\n")
	assert.Contains(t, out, "page 3\n")
}

func TestPaginate_WritesPages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	out, err := executeWithConfig(t, "", "paginate", "--page-height", "60", "-o", dir, writeDoc(t))

	require.NoError(t, err)
	assert.Contains(t, out, "3 pages written")
	for _, name := range []string{"page-001.png", "page-002.png", "page-003.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestPaginate_NeedsPageHeight(t *testing.T) {
	_, err := executeWithConfig(t, "", "paginate", writeDoc(t))
	assert.ErrorIs(t, err, errNoPageHeight)
}

func TestRender(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.png")

	_, err := executeWithConfig(t, "", "render", "--width", "300", "-o", output, writeDoc(t))

	require.NoError(t, err)
	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConfigFileAndValidation(t *testing.T) {
	_, err := executeWithConfig(t, "viewport:\n  width: -5\n", "dump", writeDoc(t))
	assert.ErrorContains(t, err, "viewport.width")
}

// executeWithConfig runs the CLI with a config file holding yaml.
func executeWithConfig(t *testing.T, yaml string, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "multicol.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(yaml), 0o644))
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfg, "--log-level", "warn"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
