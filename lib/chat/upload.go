// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
)

// DefaultUploadContentType is used when FileUpload.ContentType is empty.
const DefaultUploadContentType = "application/octet-stream"

// FileUpload describes one file for a multipart upload.
type FileUpload struct {
	// Name is the file name reported to the server. Only the base name
	// is sent.
	Name string

	// Reader supplies the file content. Required.
	Reader io.Reader

	// ContentType defaults to DefaultUploadContentType.
	ContentType string

	// User is the uploading user, sent JSON-encoded in the "user" field.
	User Payload
}

// SendFile uploads a file to path (a channel's "file" or "image"
// endpoint) as multipart form data.
func (client *Client) SendFile(ctx context.Context, path string, upload FileUpload) (*Response, error) {
	return client.Upload(ctx, path, upload)
}

// Upload implements Requester.
func (client *Client) Upload(ctx context.Context, path string, upload FileUpload) (*Response, error) {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.requestURL(path, nil), body)
	if err != nil {
		return nil, fmt.Errorf("chat: creating upload request: %w", err)
	}
	client.setHeaders(request)
	request.Header.Set("Content-Type", contentType)

	return client.send(request, path)
}

// encodeUpload builds the multipart body: a "user" field holding JSON
// and a "file" part carrying the content.
func encodeUpload(upload FileUpload) (*bytes.Buffer, string, error) {
	if upload.Reader == nil {
		return nil, "", usageErrorf("file upload requires a reader")
	}

	user, err := json.Marshal(upload.User)
	if err != nil {
		return nil, "", fmt.Errorf("chat: encoding upload user: %w", err)
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = DefaultUploadContentType
	}
	name := filepath.Base(upload.Name)
	if upload.Name == "" {
		name = "file"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("user", string(user)); err != nil {
		return nil, "", fmt.Errorf("chat: writing upload user field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("chat: creating upload file part: %w", err)
	}
	if _, err := io.Copy(part, upload.Reader); err != nil {
		return nil, "", fmt.Errorf("chat: reading upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("chat: finishing upload body: %w", err)
	}
	return &body, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(value string) string {
	return quoteEscaper.Replace(value)
}
