// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package rgwadmin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws/credentials"
	v4 "github.com/aws/aws-sdk-go/aws/signer/v4"
)

const (
	authRegion        = "default"
	service           = "s3"
	connectionTimeout = 3 * time.Second

	// DefaultAdminEntry is the admin entry point most gateways are
	// deployed with; it is configurable per cluster.
	DefaultAdminEntry = "admin"
)

var (
	errNoEndpoint  = errors.New("endpoint not set")
	errNoAccessKey = errors.New("access key not set")
	errNoSecretKey = errors.New("secret key not set")
)

// HTTPClient defines an interface for HTTP operations.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// AuthConfig holds authentication details.
type AuthConfig struct {
	AccessKey string
	SecretKey string
}

// API represents a Ceph RGW Admin Ops API client.
type API struct {
	Auth       AuthConfig
	Endpoint   string
	AdminEntry string
	HTTPClient HTTPClient
}

// New creates a new Ceph RGW client with basic validation.
func New(endpoint, adminEntry, accessKey, secretKey string, httpClient HTTPClient) (*API, error) {
	if err := validateConfig(endpoint, accessKey, secretKey); err != nil {
		return nil, err
	}

	if adminEntry == "" {
		adminEntry = DefaultAdminEntry
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: connectionTimeout}
	}

	return &API{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		AdminEntry: strings.Trim(adminEntry, "/"),
		Auth: AuthConfig{
			AccessKey: accessKey,
			SecretKey: secretKey,
		},
		HTTPClient: httpClient,
	}, nil
}

// validateConfig ensures required parameters are set.
func validateConfig(endpoint, accessKey, secretKey string) error {
	switch {
	case endpoint == "":
		return errNoEndpoint
	case accessKey == "":
		return errNoAccessKey
	case secretKey == "":
		return errNoSecretKey
	default:
		return nil
	}
}

// call performs a signed GET against one admin resource and classifies the
// outcome: transport failures become *TransportError, non-2xx responses
// become *StatusError, a 2xx body is returned as-is for the typed
// accessors to decode.
func (api *API) call(ctx context.Context, resource, args string) ([]byte, error) {
	reqURL := buildQueryPath(api.Endpoint, api.AdminEntry, resource, args)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	if err := api.signRequest(req); err != nil {
		return nil, err
	}

	resp, err := api.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Usually a missing usage-logging capability or a wrong admin
		// entry point; callers degrade, the process keeps running.
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// signRequest signs an HTTP request using AWS v4 signing.
func (api *API) signRequest(req *http.Request) error {
	cred := credentials.NewStaticCredentials(api.Auth.AccessKey, api.Auth.SecretKey, "")
	signer := v4.NewSigner(cred)

	_, err := signer.Sign(req, nil, service, authRegion, time.Now())
	return err
}

// buildQueryPath constructs an admin query URL of the form
// {endpoint}/{adminEntry}/{resource}/?format=json[&args].
func buildQueryPath(endpoint, adminEntry, resource, args string) string {
	url := fmt.Sprintf("%s/%s/%s/?format=json", endpoint, adminEntry, resource)
	if args != "" {
		url += "&" + args
	}
	return url
}
