package ports

import "net/http"

// HTTPClient is the part of *http.Client the gateway transport needs.
// Tests substitute a recording double.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
