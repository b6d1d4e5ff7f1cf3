// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChannelSendFile(t *testing.T) {
	type received struct {
		path        string
		user        map[string]any
		filename    string
		contentType string
		content     string
		apiKey      string
		auth        string
	}
	results := make(chan received, 1)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var got received
		got.path = request.URL.Path
		got.apiKey = request.URL.Query().Get("api_key")
		got.auth = request.Header.Get("Stream-Auth-Type")

		if err := request.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := json.Unmarshal([]byte(request.FormValue("user")), &got.user); err != nil {
			t.Errorf("user field: %v", err)
		}
		file, header, err := request.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		got.filename = header.Filename
		got.contentType = header.Header.Get("Content-Type")
		got.content = string(content)
		results <- got

		writer.Header().Set("Content-Type", "application/json")
		io.WriteString(writer, `{"file":"https://cdn.example/report.txt"}`)
	}))
	defer server.Close()
	client := newTestClientURL(t, server.URL)

	response, err := client.Channel("messaging", "general", nil).SendFile(context.Background(), FileUpload{
		Name:        "/tmp/report.txt",
		Reader:      strings.NewReader("quarterly numbers"),
		ContentType: "text/plain",
		User:        Payload{"id": "alice"},
	})
	if err != nil {
		t.Fatalf("SendFile: %v", err)
	}
	if response.String("file") != "https://cdn.example/report.txt" {
		t.Errorf("file = %q", response.String("file"))
	}

	got := <-results
	if got.path != "/channels/messaging/general/file" {
		t.Errorf("path = %s", got.path)
	}
	if got.apiKey != testAPIKey || got.auth != "jwt" {
		t.Errorf("api_key = %q, auth type = %q", got.apiKey, got.auth)
	}
	if got.user["id"] != "alice" {
		t.Errorf("user = %v", got.user)
	}
	if got.filename != "report.txt" || got.contentType != "text/plain" || got.content != "quarterly numbers" {
		t.Errorf("file part = %+v", got)
	}
}

func TestUploadDefaults(t *testing.T) {
	body, contentType, err := encodeUpload(FileUpload{Reader: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("encodeUpload: %v", err)
	}
	if !strings.HasPrefix(contentType, "multipart/form-data; boundary=") {
		t.Errorf("content type = %q", contentType)
	}
	encoded := body.String()
	if !strings.Contains(encoded, "Content-Type: "+DefaultUploadContentType) {
		t.Errorf("default content type missing from %q", encoded)
	}
	if !strings.Contains(encoded, `filename="file"`) {
		t.Errorf("default file name missing from %q", encoded)
	}
	if !strings.Contains(encoded, "null") {
		t.Errorf("nil user not encoded as null: %q", encoded)
	}
}

func TestUploadRequiresReader(t *testing.T) {
	_, _, err := encodeUpload(FileUpload{Name: "a.txt"})
	requireUsageError(t, err)
}
