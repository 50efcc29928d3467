package export

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("Chrome/Chromium not installed")
	return ""
}

func TestPDF_PrintsRenderedPage(t *testing.T) {
	chrome := findChrome(t)

	r, err := rendering.New()
	require.NoError(t, err)
	page, err := r.RenderString(types.SampleDocument(), rendering.PageOptions{Mode: rendering.ModeViewer})
	require.NoError(t, err)

	pdf, err := PDF(context.Background(), page, PDFOptions{Timeout: time.Minute, ExecPath: chrome})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPDF_MissingBinary(t *testing.T) {
	_, err := PDF(context.Background(), "<html></html>", PDFOptions{
		Timeout:  5 * time.Second,
		ExecPath: "/nonexistent/chrome",
	})
	require.Error(t, err)

	var exportErr *Error
	assert.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "pdf", exportErr.Format)
}
