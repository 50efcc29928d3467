// Package loader reads resume documents from local files or http(s) URLs.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	rootschemas "github.com/jonathan/resume-studio/schemas"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// DefaultTimeout is the default HTTP request timeout for remote documents.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeStudio/1.0)"

// MaxDocumentBytes caps how much of a remote response is read.
const MaxDocumentBytes = 4 << 20

// Error represents a failure to load a document from a source.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures loading.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// Strict validates the raw JSON against the resume schema and the
	// decoded document against its struct tags.
	Strict bool
	Client *http.Client
}

// DefaultOptions returns sensible defaults for loading.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads and decodes the document at source.
func Load(ctx context.Context, source string, opts *Options) (*types.Document, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	data, err := Read(ctx, source, opts)
	if err != nil {
		return nil, err
	}

	doc, err := Decode(data, opts.Strict)
	if err != nil {
		return nil, &Error{Source: source, Message: "invalid document", Cause: err}
	}

	log.Printf("[loader] loaded %s (%d bytes, strict=%t)", source, len(data), opts.Strict)
	return doc, nil
}

// Decode parses a document. In strict mode the schema and struct checks run first.
func Decode(data []byte, strict bool) (*types.Document, error) {
	if strict {
		if err := schemas.ValidateBytes(rootschemas.Resume, data); err != nil {
			return nil, err
		}
	}

	var doc types.Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if strict {
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

// Read returns the raw bytes at source without decoding them.
func Read(ctx context.Context, source string, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if source == "" {
		return nil, &Error{Source: source, Message: "no source given"}
	}
	if IsURL(source) {
		return fetch(ctx, source, opts)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		msg := "failed to read file"
		if errors.Is(err, os.ErrNotExist) {
			msg = "file not found"
		}
		return nil, &Error{Source: source, Message: msg, Cause: err}
	}
	return data, nil
}

func fetch(ctx context.Context, urlStr string, opts *Options) ([]byte, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Host == "" {
		return nil, &Error{Source: urlStr, Message: "invalid URL", Cause: err}
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{Source: urlStr, Message: "failed to create request", Cause: err}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Source: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Source: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, &Error{Source: urlStr, Message: "failed to read response body", Cause: err}
	}
	if len(body) > MaxDocumentBytes {
		return nil, &Error{Source: urlStr, Message: fmt.Sprintf("document exceeds %d bytes", MaxDocumentBytes)}
	}
	return body, nil
}

// Save writes doc to path in export format, replacing any existing file.
func Save(path string, doc *types.Document) error {
	data, err := export.MarshalDocument(doc)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile replaces path with data via a temporary file in the same directory.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
