package mocks

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// ApprovedPeriodicResponse is a minimal accepted-and-approved SecurePay reply
const ApprovedPeriodicResponse = `<?xml version="1.0" encoding="UTF-8"?>
<SecurePayMessage><Status><statusCode>0</statusCode><statusDescription>Normal</statusDescription></Status>
<Periodic><PeriodicList count="1"><PeriodicItem ID="1"><responseCode>0</responseCode><responseText>Approved</responseText><txnID>009887</txnID></PeriodicItem></PeriodicList></Periodic></SecurePayMessage>`

// MockHTTPClient is a mock implementation of HTTPClient for testing
type MockHTTPClient struct {
	mu sync.Mutex

	DoFunc func(req *http.Request) (*http.Response, error)
	Calls  []*http.Request
	Bodies []string // request bodies, in call order
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient(doFunc func(req *http.Request) (*http.Response, error)) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: doFunc,
		Calls:  []*http.Request{},
	}
}

// NewXMLResponder returns a mock that answers every request with body and HTTP status
func NewXMLResponder(status int, body string) *MockHTTPClient {
	return NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return XMLResponse(status, body), nil
	})
}

// XMLResponse builds an *http.Response carrying an XML body
func XMLResponse(status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/xml")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     header,
	}
}

// Do executes the mock function and captures the call
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
		req.Body = io.NopCloser(bytes.NewReader(data))
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.Bodies = append(m.Bodies, body)
	doFunc := m.DoFunc
	m.mu.Unlock()

	if doFunc != nil {
		return doFunc(req)
	}
	// Default approval
	return XMLResponse(http.StatusOK, ApprovedPeriodicResponse), nil
}

// LastBody returns the most recent request body
func (m *MockHTTPClient) LastBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Bodies) == 0 {
		return ""
	}
	return m.Bodies[len(m.Bodies)-1]
}
