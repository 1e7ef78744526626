package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/model"
)

// ScanFile uploads a receipt image as the multipart field "file".
func (c *Client) ScanFile(ctx context.Context, filename string, r io.Reader) (model.OcrResult, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return model.OcrResult{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return model.OcrResult{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := form.Close(); err != nil {
		return model.OcrResult{}, fmt.Errorf("failed to finish form: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, "ocr/scan", nil, &buf, form.FormDataContentType(), "application/json")
	if err != nil {
		return model.OcrResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var result model.OcrResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.OcrResult{}, fmt.Errorf("%w: decoding scan response: %w", common.ErrRequestFailed, err)
	}
	return result, nil
}

// ScanText extracts a receipt from pasted text.
func (c *Client) ScanText(ctx context.Context, text string) (model.OcrResult, error) {
	var result model.OcrResult
	body := map[string]string{"text": text}
	if err := c.doJSON(ctx, http.MethodPost, "ocr/scan-text", nil, body, &result); err != nil {
		return model.OcrResult{}, err
	}
	return result, nil
}
