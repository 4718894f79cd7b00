package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Varun5711/autocare/internal/models"
)

// RequestUploadURL asks the backend for a presigned PUT target for one file.
func (c *Client) RequestUploadURL(ctx context.Context, token, fileName, fileType string) (*models.UploadTarget, error) {
	var target models.UploadTarget
	err := c.doJSON(ctx, http.MethodPost, "/upload-url", token, models.UploadURLRequest{
		FileName: fileName,
		FileType: fileType,
	}, &target)
	if err != nil {
		return nil, err
	}

	if target.UploadURL == "" || target.ImageURL == "" {
		return nil, fmt.Errorf("%w: upload target missing uploadUrl or imageUrl", ErrMalformedResponse)
	}
	return &target, nil
}

// PutObject sends data to a presigned URL. The URL already carries its own
// authorization, so no token is attached and the API rate limiter is skipped.
func (c *Client) PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("PUT presigned upload failed: %v", err)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode}
	}
	c.log.Debug("PUT presigned upload -> %d (%d bytes)", resp.StatusCode, len(data))
	return nil
}
