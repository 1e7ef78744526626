package api

import (
	"context"
	"io"
	"net/http"
	"strconv"
)

// ExportPDF streams the PDF report of userID. The caller closes the reader.
func (c *Client) ExportPDF(ctx context.Context, userID int64) (io.ReadCloser, error) {
	resp, err := c.send(ctx, http.MethodGet, "export/pdf/"+strconv.FormatInt(userID, 10), nil, nil, "", "application/pdf")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
