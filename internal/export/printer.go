package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"go.uber.org/zap"
)

// Engines
const (
	EnginePDF     = "pdf"
	EngineBrowser = "browser"
)

// Engines lists the supported export engines
var Engines = []string{EnginePDF, EngineBrowser}

// Printer produces a paginated A4 document from a render tree
type Printer interface {
	Print(ctx context.Context, tree rendering.Tree) ([]byte, error)
}

// New returns the printer for the named engine
func New(engine string, timeout time.Duration, logger *zap.Logger) (Printer, error) {
	switch engine {
	case EnginePDF, "":
		return NewPDFPrinter(logger), nil
	case EngineBrowser:
		return NewBrowserPrinter(timeout, logger), nil
	default:
		return nil, &ExportError{Engine: engine, Message: fmt.Sprintf("unknown export engine %q", engine)}
	}
}
