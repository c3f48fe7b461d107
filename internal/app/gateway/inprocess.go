package gateway

import (
	"net/http"
	"net/http/httptest"
)

// HandlerTransport dispatches requests straight to an http.Handler
// without opening a socket. It backs the mock data source.
type HandlerTransport struct {
	Handler http.Handler
}

// NewHandlerTransport wraps handler in a RoundTripper
func NewHandlerTransport(handler http.Handler) *HandlerTransport {
	return &HandlerTransport{Handler: handler}
}

// RoundTrip implements http.RoundTripper
func (t *HandlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	server := req.Clone(req.Context())
	server.RequestURI = req.URL.RequestURI()
	server.RemoteAddr = "127.0.0.1:0"
	if server.Body == nil {
		server.Body = http.NoBody
	}

	rec := httptest.NewRecorder()
	t.Handler.ServeHTTP(rec, server)

	resp := rec.Result()
	resp.Request = req
	return resp, nil
}
