package resource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	stdnet "multicol/std/net"
)

// ErrUnsupportedScheme is returned for URIs that are neither local paths
// nor http(s).
var ErrUnsupportedScheme = errors.New("unsupported scheme")

const defaultTimeout = 30 * time.Second

// Source is a loaded document and where it came from. Relative references
// resolve against BaseURL for remote documents and BaseDir for local ones.
type Source struct {
	URI     string
	Body    string
	BaseURL string
	BaseDir string
}

func (s *Source) Remote() bool { return s.BaseURL != "" }

// Loader reads documents and their subresources from disk or the network.
type Loader struct {
	client *stdnet.Client
	logger *zap.Logger
}

func NewLoader(client *stdnet.Client, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = stdnet.NewClient(defaultTimeout, "")
	}
	return &Loader{client: client, logger: logger}
}

// Load reads the document at uri: a path, a file:// URL or an http(s) URL.
func (l *Loader) Load(ctx context.Context, uri string) (*Source, error) {
	switch {
	case stdnet.IsNetworkURL(uri):
		body, _, err := l.client.Fetch(ctx, uri)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded document", zap.String("uri", uri), zap.Int("bytes", len(body)))
		return &Source{URI: uri, Body: string(body), BaseURL: uri}, nil
	case strings.HasPrefix(uri, "file://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", uri, err)
		}
		return l.loadFile(u.Path)
	case strings.Contains(uri, "://") || strings.HasPrefix(uri, "data:"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
	return l.loadFile(uri)
}

func (l *Loader) loadFile(path string) (*Source, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	l.logger.Debug("loaded document", zap.String("path", path), zap.Int("bytes", len(body)))
	return &Source{URI: path, Body: string(body), BaseDir: filepath.Dir(path)}, nil
}

// Fetch reads a subresource referenced from src.
func (l *Loader) Fetch(ctx context.Context, src *Source, ref string) ([]byte, error) {
	switch {
	case stdnet.IsNetworkURL(ref):
	case src.Remote():
		ref = stdnet.ResolveURL(src.BaseURL, ref)
	case strings.Contains(ref, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, ref)
	default:
		if !filepath.IsAbs(ref) {
			ref = filepath.Join(src.BaseDir, ref)
		}
		return os.ReadFile(ref)
	}
	body, _, err := l.client.Fetch(ctx, ref)
	return body, err
}
