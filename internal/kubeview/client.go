/*
Package kubeview is a thin client for the kubeview scraping API. Every failure is returned to the caller; deciding
which failures matter is left to the pkg layer.
*/
package kubeview

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"

	"github.com/anchore/kubeview-client/internal/config"
	"github.com/anchore/kubeview-client/internal/log"
	"github.com/anchore/kubeview-client/internal/tracker"
	"github.com/anchore/kubeview-client/internal/version"
)

const (
	namespacesPath = "namespaces"
	scrapePath     = "scrape"
)

// error bodies are only kept for diagnostics, there is no point reading an HTML page of unbounded size
const maxErrorBodyBytes = 64 * 1024

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient builds a client for the API rooted at cfg.URL (e.g. http://localhost:8000/api)
func NewClient(cfg config.APIInfo) (*Client, error) {
	if !cfg.IsValid() {
		return nil, fmt.Errorf("kubeview API url is not configured")
	}

	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kubeview API url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("kubeview API url must be absolute: %q", cfg.URL)
	}

	//nolint:gosec
	tr := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.HTTP.Insecure},
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: tr,
			Timeout:   time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// ListNamespaces fetches every namespace the API can see
func (c *Client) ListNamespaces(ctx context.Context) ([]corev1.Namespace, error) {
	operation := "namespace list"

	body, err := c.get(ctx, operation, namespacesPath)
	if err != nil {
		return nil, err
	}

	var namespaces []corev1.Namespace
	if err := json.Unmarshal(body, &namespaces); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", operation, err)
	}
	return namespaces, nil
}

// GetNamespaceData fetches the scraped objects of a single namespace, the payload is returned as is
func (c *Client) GetNamespaceData(ctx context.Context, namespace string) (json.RawMessage, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}
	return c.get(ctx, "namespace scrape", scrapePath, namespace)
}

func (c *Client) endpoint(elem ...string) string {
	escaped := make([]string, 0, len(elem))
	for _, e := range elem {
		escaped = append(escaped, url.PathEscape(e))
	}
	return c.baseURL.JoinPath(escaped...).String()
}

func (c *Client) get(ctx context.Context, operation string, elem ...string) (json.RawMessage, error) {
	defer tracker.TrackFunctionTime(time.Now(), fmt.Sprintf("Sent %s request to kubeview", operation))

	endpoint := c.endpoint(elem...)
	log.Debugf("Performing %s using endpoint: %s", operation, endpoint)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s request: %w", operation, err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", version.UserAgent())

	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to perform %s: %w", operation, err)
	}
	defer response.Body.Close()

	if err := checkHTTPErrors(response, operation); err != nil {
		return nil, err
	}

	return getBody(response, operation)
}

func checkHTTPErrors(response *http.Response, operation string) error {
	if response.StatusCode >= 200 && response.StatusCode <= 299 {
		return nil
	}

	msg := fmt.Sprintf("%s response from kubeview (during %s)", response.Status, operation)
	log.Debug(msg)

	apiClientError := &APIClientError{
		HTTPStatusCode: response.StatusCode,
		Message:        msg,
		Path:           response.Request.URL.Path,
		Method:         response.Request.Method,
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
	if err != nil {
		log.Debugf("failed to read %s error body: %v", operation, err)
		return apiClientError
	}
	apiClientError.Body = strings.TrimSpace(string(body))
	return apiClientError
}

func getBody(response *http.Response, operation string) (json.RawMessage, error) {
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response body: %w", operation, err)
	}

	// a proxy or login page in front of the API can answer 200 with HTML
	if !json.Valid(responseBody) {
		log.Debugf("kubeview %s response body: %s", operation, string(responseBody))
		return nil, fmt.Errorf("%s response from kubeview is not valid json", operation)
	}
	return responseBody, nil
}
