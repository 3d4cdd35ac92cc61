package js

import (
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"multicol/pkg/html"
)

// Engine runs a document's inline scripts so they can reshape the DOM
// before styles are cascaded and the tree is laid out.
type Engine struct {
	vm     *goja.Runtime
	logger *zap.Logger
}

type Option func(*Engine)

// WithLogger routes console output and script diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(opts ...Option) *Engine {
	e := &Engine{vm: goja.New(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	registerConsole(e.vm, e.logger.Named("console"))
	return e
}

// Execute runs doc.Scripts in order and stops at the first error.
func (e *Engine) Execute(doc *html.Document) error {
	registerDocument(e.vm, doc)
	for i, script := range doc.Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
		e.logger.Debug("script done", zap.Int("index", i), zap.Int("bytes", len(script)))
	}
	return nil
}

// Eval evaluates a single expression against the last executed document.
func (e *Engine) Eval(src string) (goja.Value, error) {
	return e.vm.RunString(src)
}
