package export

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper in inches, as Chrome's print API expects.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
)

// PDFOptions configures headless printing.
type PDFOptions struct {
	Timeout  time.Duration
	ExecPath string // Chrome binary; empty uses chromedp's lookup
	Verbose  bool
}

// DefaultPDFOptions returns the options used when none are configured.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{Timeout: 30 * time.Second}
}

// PDF prints a rendered page through headless Chrome on A4 paper with zero
// margins and background graphics, the settings the print stylesheet is
// written for. Requires Chrome/Chromium to be installed.
func PDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultPDFOptions().Timeout
	}
	if opts.Verbose {
		log.Printf("[export] printing %d bytes of HTML to PDF", len(html))
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#resume-container", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &Error{Format: "pdf", Message: "headless print failed", Cause: err}
	}

	if opts.Verbose {
		log.Printf("[export] PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}
