// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/streamchat/cmd/streamchat/cli"
	"github.com/bureau-foundation/streamchat/lib/chat"
	"github.com/bureau-foundation/streamchat/lib/config"
)

// ConnectionParams selects the application a command talks to.
type ConnectionParams struct {
	ConfigPath string
	Profile    string
	Verbose    bool
}

// AddFlags registers --config, --profile, and --verbose.
func (c *ConnectionParams) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigPath, "config", "", "path to streamchat.yaml (default $"+config.EnvConfigPath+")")
	flagSet.StringVar(&c.Profile, "profile", "", "profile to use from the config file")
	flagSet.BoolVarP(&c.Verbose, "verbose", "v", false, "log every API request")
}

// connect builds a client from the selected profile, or from the SDK
// environment variables when no config file is named.
func (env *Env) connect(params *ConnectionParams) (*chat.Client, error) {
	logger := env.logger(params.Verbose)

	configPath := params.ConfigPath
	if configPath == "" {
		configPath = os.Getenv(config.EnvConfigPath)
	}
	if configPath == "" {
		if params.Profile != "" {
			return nil, cli.Validation("--profile needs --config or %s", config.EnvConfigPath)
		}
		client, err := chat.NewClientFromEnv(func(cfg *chat.Config) {
			cfg.Clock = env.Clock
			cfg.Logger = logger
		})
		if err != nil {
			return nil, classify("connecting", err)
		}
		return client, nil
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	profile, err := cfg.Profile(params.Profile)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	timeout, err := profile.TimeoutDuration()
	if err != nil {
		return nil, cli.Validation("profile %s: %w", profile.Name, err)
	}
	key, err := profile.OpenSecret()
	if err != nil {
		return nil, cli.Validation("profile %s: %w", profile.Name, err)
	}

	client, err := chat.NewClient(chat.Config{
		APIKey:  profile.APIKey,
		Secret:  key,
		BaseURL: profile.BaseURL,
		Timeout: timeout,
		Clock:   env.Clock,
		Logger:  logger.With("profile", profile.Name),
	})
	if err != nil {
		return nil, classify("connecting", err)
	}
	return client, nil
}

// classify wraps an SDK error with action and a category derived from
// its type and status.
func classify(action string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("%s: %w", action, err)

	var apiErr *chat.APIError
	var netErr net.Error
	category := cli.CategoryInternal
	switch {
	case chat.IsUsageError(err):
		category = cli.CategoryValidation
	case chat.IsNotFound(err):
		category = cli.CategoryNotFound
	case chat.IsRateLimited(err):
		category = cli.CategoryTransient
	case errors.As(err, &apiErr):
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			category = cli.CategoryForbidden
		case apiErr.StatusCode >= 500:
			category = cli.CategoryTransient
		default:
			category = cli.CategoryValidation
		}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		category = cli.CategoryTransient
	}
	return &cli.ToolError{Category: category, Err: wrapped}
}

// parseQueryArgs decodes the shared --filter and --sort flags.
func parseQueryArgs(filterArg, sortArg string) (chat.Filter, chat.Sort, error) {
	var filter chat.Filter
	if err := cli.ParseJSONArg("filter", filterArg, &filter); err != nil {
		return nil, nil, err
	}
	var sort chat.Sort
	if err := cli.ParseJSONArg("sort", sortArg, &sort); err != nil {
		return nil, nil, err
	}
	return filter, sort, nil
}

// parseData decodes a --data flag into a Payload, never nil.
func parseData(dataArg string) (chat.Payload, error) {
	data := chat.Payload{}
	if err := cli.ParseJSONArg("data", dataArg, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = chat.Payload{}
	}
	return data, nil
}

// objects returns the JSON objects in the array at path of response.
func objects(response *chat.Response, path ...string) []map[string]any {
	value, _ := response.Lookup(path...)
	items, _ := value.([]any)
	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if object, ok := item.(map[string]any); ok {
			result = append(result, object)
		}
	}
	return result
}

// field formats object[key] for a text table, "-" when absent.
func field(object map[string]any, key string) string {
	value, ok := object[key]
	if !ok || value == nil {
		return "-"
	}
	if number, ok := value.(float64); ok && number == float64(int64(number)) {
		return fmt.Sprintf("%d", int64(number))
	}
	return fmt.Sprint(value)
}

// withClient connects, runs fn, and closes the client.
func (env *Env) withClient(params *ConnectionParams, fn func(client *chat.Client) error) error {
	client, err := env.connect(params)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}
