package export

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/rendering"
	"go.uber.org/zap"
)

// A4 paper size in inches, as expected by Page.printToPDF
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// DefaultBrowserTimeout bounds a single headless print
const DefaultBrowserTimeout = 30 * time.Second

// BrowserPrinter prints the HTML preview with a headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type BrowserPrinter struct {
	timeout  time.Duration
	logger   *zap.Logger
	execPath string
}

// NewBrowserPrinter creates a browser printer. A zero timeout uses DefaultBrowserTimeout.
func NewBrowserPrinter(timeout time.Duration, log *zap.Logger) *BrowserPrinter {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	return &BrowserPrinter{timeout: timeout, logger: logger.OrNop(log)}
}

// WithExecPath returns a copy of the printer that launches the given browser binary
func (b *BrowserPrinter) WithExecPath(path string) *BrowserPrinter {
	clone := *b
	clone.execPath = path
	return &clone
}

func (b *BrowserPrinter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}
	return opts
}

// Print loads the tree's HTML page into a blank tab and prints it to PDF
func (b *BrowserPrinter) Print(ctx context.Context, tree rendering.Tree) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExportError{Engine: EngineBrowser, Message: "export cancelled", Cause: err}
	}

	html, err := rendering.HTML(tree)
	if err != nil {
		return nil, &ExportError{Engine: EngineBrowser, Message: "failed to render HTML", Cause: err}
	}

	b.logger.Debug("starting headless browser", zap.Int("html_bytes", len(html)))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, &ExportError{Engine: EngineBrowser, Message: "browser print failed", Cause: err}
	}

	b.logger.Debug("browser print finished", zap.Int("bytes", len(pdf)))
	return pdf, nil
}
