package js

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"tessera/pkg/html"
)

// ErrInterrupted is returned when a script is stopped because its context
// ended.
var ErrInterrupted = errors.New("script interrupted")

// Engine executes JavaScript against an HTML document's DOM.
type Engine struct {
	vm     *goja.Runtime
	logger *zap.Logger
}

// New creates a new JS engine with a fresh goja runtime. console output goes
// to logger; a nil logger discards it.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	vm := goja.New()
	e := &Engine{vm: vm, logger: logger}

	c := &consoleAPI{logger: logger.Named("console")}
	c.register(vm)

	return e
}

// Execute runs all scripts from the document against the DOM, in document
// order. It stops at the first script error. Cancelling ctx interrupts the
// running script.
func (e *Engine) Execute(ctx context.Context, doc *html.Document) error {
	registerDocument(e.vm, doc)

	defer e.vm.ClearInterrupt()
	stop := context.AfterFunc(ctx, func() {
		e.vm.Interrupt(ErrInterrupted)
	})
	defer stop()

	for i, script := range doc.Scripts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
		if _, err := e.vm.RunString(script); err != nil {
			var interrupted *goja.InterruptedError
			if errors.As(err, &interrupted) {
				return fmt.Errorf("script %d: %w", i, ErrInterrupted)
			}
			return fmt.Errorf("script %d: %w", i, err)
		}
		e.logger.Debug("script executed", zap.Int("index", i))
	}

	return nil
}
