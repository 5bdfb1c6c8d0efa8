package lib

import "net/http"

// HttpClient is the part of http.Client our clients depend on, so that
// tests can substitute a mock transport.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}
