// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bureau-foundation/streamchat/lib/netutil"
	"github.com/bureau-foundation/streamchat/lib/secret"
	"github.com/bureau-foundation/streamchat/lib/version"
)

const (
	// DefaultBaseURL is the public Stream Chat API endpoint.
	DefaultBaseURL = "https://chat.stream-io-api.com"

	// DefaultTimeout bounds each request when Config.Timeout is zero.
	DefaultTimeout = 6 * time.Second
)

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIKey    = "STREAM_KEY"
	EnvAPISecret = "STREAM_SECRET"
	EnvTimeout   = "STREAM_CHAT_TIMEOUT"
	EnvBaseURL   = "STREAM_CHAT_URL"
)

// Config holds configuration for creating a Client.
type Config struct {
	// APIKey identifies the application. Required.
	APIKey string

	// APISecret signs tokens. Required unless Secret is set.
	APISecret string

	// Secret is a pre-loaded API secret. When set it takes precedence
	// over APISecret and the Client takes ownership: Client.Close
	// closes it.
	Secret *secret.Key

	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// Timeout bounds each request end to end. Defaults to
	// DefaultTimeout. Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the pooled client built by
	// netutil.NewHTTPClient.
	HTTPClient *http.Client

	// Clock provides the current time. Defaults to the real clock.
	Clock clockwork.Clock

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Requester issues signed API calls. *Client implements it; the
// resource facades depend only on this interface.
type Requester interface {
	// Do sends a JSON request. body is encoded only for POST, PUT and
	// PATCH.
	Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error)

	// Upload sends a multipart file upload.
	Upload(ctx context.Context, path string, upload FileUpload) (*Response, error)
}

// Client is a Stream Chat server-side API client. It is safe for
// concurrent use.
type Client struct {
	apiKey      string
	secret      *secret.Key
	serverToken string
	baseURL     string
	httpClient  *http.Client
	clock       clockwork.Clock
	logger      *slog.Logger
}

var _ Requester = (*Client)(nil)

// NewClient creates a Client. Missing credentials or an unparseable
// BaseURL return a *UsageError.
func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" || (config.APISecret == "" && config.Secret == nil) {
		if config.Secret != nil {
			config.Secret.Close()
		}
		return nil, usageErrorf("api key and api secret are required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		if config.Secret != nil {
			config.Secret.Close()
		}
		return nil, usageErrorf("invalid base URL %q: %v", baseURL, err)
	}

	key := config.Secret
	if key == nil {
		var err error
		key, err = secret.NewKeyFromString(config.APISecret)
		if err != nil {
			return nil, fmt.Errorf("chat: protecting api secret: %w", err)
		}
	}

	serverToken, err := signClaims(key, serverClaims())
	if err != nil {
		key.Close()
		return nil, err
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = netutil.NewHTTPClient(netutil.HTTPClientConfig{Timeout: timeout})
	}

	clock := config.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiKey:      config.APIKey,
		secret:      key,
		serverToken: serverToken,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		clock:       clock,
		logger:      logger,
	}, nil
}

// ConfigFromEnv builds a Config from STREAM_KEY, STREAM_SECRET,
// STREAM_CHAT_TIMEOUT (seconds, fractional allowed), and
// STREAM_CHAT_URL. Only the timeout is validated here; missing
// credentials are reported by NewClient.
func ConfigFromEnv() (Config, error) {
	config := Config{
		APIKey:    os.Getenv(EnvAPIKey),
		APISecret: os.Getenv(EnvAPISecret),
		BaseURL:   os.Getenv(EnvBaseURL),
	}
	if raw := os.Getenv(EnvTimeout); raw != "" {
		seconds, err := strconv.ParseFloat(raw, 64)
		if err != nil || seconds < 0 {
			return Config{}, usageErrorf("invalid %s %q: want seconds", EnvTimeout, raw)
		}
		config.Timeout = time.Duration(seconds * float64(time.Second))
	}
	return config, nil
}

// NewClientFromEnv creates a Client from the environment. Each
// override is applied to the environment-derived Config before
// construction.
func NewClientFromEnv(overrides ...func(*Config)) (*Client, error) {
	config, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(&config)
	}
	return NewClient(config)
}

// APIKey returns the application API key.
func (client *Client) APIKey() string {
	return client.apiKey
}

// Close releases the protected API secret and idle connections. The
// Client must not be used afterwards.
func (client *Client) Close() error {
	client.httpClient.CloseIdleConnections()
	return client.secret.Close()
}

// Get issues a GET request.
func (client *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return client.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body.
func (client *Client) Post(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return client.Do(ctx, http.MethodPost, path, query, body)
}

// Put issues a PUT request with a JSON body.
func (client *Client) Put(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return client.Do(ctx, http.MethodPut, path, query, body)
}

// Patch issues a PATCH request with a JSON body.
func (client *Client) Patch(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return client.Do(ctx, http.MethodPatch, path, query, body)
}

// Delete issues a DELETE request.
func (client *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return client.Do(ctx, http.MethodDelete, path, query, nil)
}

// Do issues a signed request to path, relative to the base URL.
func (client *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	var bodyReader io.Reader
	if hasBody(method) {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("chat: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.requestURL(path, query), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("chat: creating request: %w", err)
	}
	client.setHeaders(request)
	request.Header.Set("Content-Type", "application/json")

	return client.send(request, path)
}

// requestURL joins path to the base URL and appends the query with
// api_key merged in. url.Values.Encode sorts by key.
func (client *Client) requestURL(path string, query url.Values) string {
	merged := make(url.Values, len(query)+1)
	for key, values := range query {
		merged[key] = values
	}
	merged.Set("api_key", client.apiKey)
	return client.baseURL + "/" + strings.TrimLeft(path, "/") + "?" + merged.Encode()
}

func (client *Client) setHeaders(request *http.Request) {
	request.Header.Set("X-Stream-Client", version.UserAgent())
	request.Header.Set("Authorization", client.serverToken)
	request.Header.Set("Stream-Auth-Type", "jwt")
}

// send performs the round trip and classifies the result.
func (client *Client) send(request *http.Request, path string) (*Response, error) {
	start := client.clock.Now()

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("chat: %s %s: %w", request.Method, path, err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("chat: reading %s %s response: %w", request.Method, path, err)
	}

	client.logger.Debug("chat request",
		"method", request.Method,
		"path", path,
		"status", response.StatusCode,
		"duration", client.clock.Since(start),
	)

	return parseResponse(response.StatusCode, response.Header, body)
}

// parseResponse returns an *APIError for a body that is not a JSON
// object or for a status of 399 and above.
func parseResponse(statusCode int, header http.Header, body []byte) (*Response, error) {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		return nil, &APIError{StatusCode: statusCode, Body: body, Header: header}
	}

	if statusCode >= 399 {
		apiErr := &APIError{
			StatusCode:   statusCode,
			JSONResponse: true,
			Body:         body,
			Header:       header,
		}
		json.Unmarshal(body, apiErr)
		if apiErr.Message == "" {
			apiErr.Message = "unknown"
		}
		return nil, apiErr
	}

	return &Response{
		Data:       data,
		Raw:        body,
		StatusCode: statusCode,
		Header:     header,
		RateLimit:  parseRateLimits(header),
	}, nil
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// endpoint joins path segments, escaping each one.
func endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for index, segment := range segments {
		escaped[index] = url.PathEscape(segment)
	}
	return strings.Join(escaped, "/")
}

// payloadQuery encodes value as the JSON "payload" query parameter
// used by GET-style queries.
func payloadQuery(value any) (url.Values, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("chat: encoding query payload: %w", err)
	}
	return url.Values{"payload": {string(encoded)}}, nil
}

// queryFromPayload flattens a Payload into query parameters. Strings
// pass through; everything else is formatted with %v, except nil which
// is dropped.
func queryFromPayload(options Payload) url.Values {
	query := url.Values{}
	for key, value := range options {
		switch typed := value.(type) {
		case nil:
		case string:
			query.Set(key, typed)
		case time.Time:
			query.Set(key, typed.UTC().Format(time.RFC3339))
		default:
			query.Set(key, fmt.Sprint(typed))
		}
	}
	return query
}
