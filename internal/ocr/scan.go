package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/model"
)

// maxReceiptSize caps the size of a selected receipt file.
const maxReceiptSize = 10 << 20

// Scanner is the extraction backend.
type Scanner interface {
	ScanFile(ctx context.Context, filename string, r io.Reader) (model.OcrResult, error)
	ScanText(ctx context.Context, text string) (model.OcrResult, error)
}

// State is a snapshot of a scan in progress.
type State struct {
	Result     *model.OcrResult
	FileName   string
	PreviewURL string
	Text       string
	Loading    bool
}

// Scan holds the transient state of one receipt scan: the selected file and
// its preview, the pasted text, and the last extraction result.
type Scan struct {
	scanner Scanner
	logger  *slog.Logger
	file    []byte
	state   State
	mu      sync.Mutex
}

// NewScan creates an empty scan.
func NewScan(scanner Scanner) *Scan {
	return &Scan{
		scanner: scanner,
		logger:  slog.Default().With("component", "ocr"),
	}
}

// State returns a copy of the current scan state.
func (s *Scan) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.Result != nil {
		r := *st.Result
		st.Result = &r
	}
	return st
}

// Result returns the last extraction result.
func (s *Scan) Result() (model.OcrResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Result == nil {
		return model.OcrResult{}, false
	}
	return *s.state.Result, true
}

// SelectFile reads a receipt image and builds its data URL preview.
func (s *Scan) SelectFile(name string, r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, maxReceiptSize+1))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > maxReceiptSize {
		return common.Invalid("file", fmt.Sprintf("must be at most %d MB", maxReceiptSize>>20))
	}

	preview := "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = data
	s.state.FileName = name
	s.state.PreviewURL = preview
	return nil
}

// SetText sets the free-text receipt.
func (s *Scan) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Text = text
}

// ScanFile extracts the selected file. Without a selected file no request is sent.
func (s *Scan) ScanFile(ctx context.Context) (model.OcrResult, error) {
	s.mu.Lock()
	if s.file == nil {
		s.mu.Unlock()
		return model.OcrResult{}, common.Invalid("file", "is required")
	}
	name, data := s.state.FileName, s.file
	s.begin()
	s.mu.Unlock()

	result, err := s.scanner.ScanFile(ctx, name, bytes.NewReader(data))
	return s.finish(result, err, "file", name)
}

// ScanText extracts the free-text receipt. Blank text sends no request.
func (s *Scan) ScanText(ctx context.Context) (model.OcrResult, error) {
	s.mu.Lock()
	text := s.state.Text
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return model.OcrResult{}, common.Invalid("text", "is required")
	}
	s.begin()
	s.mu.Unlock()

	result, err := s.scanner.ScanText(ctx, text)
	return s.finish(result, err, "text", "")
}

// Reset clears the file, preview, text, and result.
func (s *Scan) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = nil
	s.state = State{}
}

// begin must be called with mu held.
func (s *Scan) begin() {
	s.state.Loading = true
	s.state.Result = nil
}

func (s *Scan) finish(result model.OcrResult, err error, source, name string) (model.OcrResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false

	if err != nil {
		s.logger.Error("Receipt scan failed", "source", source, "file", name, "error", err)
		return model.OcrResult{}, fmt.Errorf("receipt scan failed: %w", err)
	}

	s.state.Result = &result
	s.logger.Debug("Receipt scanned", "source", source, "category", result.Category, "confidence", result.Confidence)
	return result, nil
}
