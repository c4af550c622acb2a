package kubeview

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
)

// APIClientError is returned for any non-2xx response from the kubeview API
type APIClientError struct {
	HTTPStatusCode int
	Message        string
	Path           string
	Method         string
	// Body is the (trimmed) textual response body, the kubeview API reports failures as plain text
	Body string
}

func (e *APIClientError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error(%d): %s Path: %q", e.HTTPStatusCode, e.Message, e.Path)
	}
	return fmt.Sprintf("API error(%d): %s Path: %q: %s", e.HTTPStatusCode, e.Message, e.Path, e.Body)
}

// AsAPIClientError unwraps an *APIClientError from err, if there is one
func AsAPIClientError(err error) (*APIClientError, bool) {
	var apiClientError *APIClientError
	if errors.As(err, &apiClientError) {
		return apiClientError, true
	}
	return nil, false
}

// IsForbidden reports whether the API refused the request with a 403. The kubeview API answers 403 whenever its
// own service account may not list the requested objects.
func IsForbidden(err error) bool {
	apiClientError, ok := AsAPIClientError(err)
	return ok && apiClientError.HTTPStatusCode == http.StatusForbidden
}

// ServerIsOffline reports whether err means the API could not be reached at all
func ServerIsOffline(err error) bool {
	if os.IsTimeout(err) {
		return true
	}

	offlineErrors := []error{
		syscall.ENETDOWN,
		syscall.ENETUNREACH,
		syscall.ENETRESET,
		syscall.ECONNABORTED,
		syscall.ECONNRESET,
		syscall.ETIMEDOUT,
		syscall.ECONNREFUSED,
		syscall.EHOSTDOWN,
		syscall.EHOSTUNREACH,
	}

	for _, e := range offlineErrors {
		if errors.Is(err, e) {
			return true
		}
	}

	var dnsError *net.DNSError
	if errors.As(err, &dnsError) {
		return true
	}

	if apiClientError, ok := AsAPIClientError(err); ok {
		switch apiClientError.HTTPStatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}
