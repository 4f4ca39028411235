package registrydata

import "fmt"

// ValidationError reports a malformed domain string. It is raised before any
// network call and is never retried.
type ValidationError struct {
	Domain string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid domain %q: %s", e.Domain, e.Reason)
}

// ErrorKind classifies protocol lookup failures.
type ErrorKind string

const (
	// KindNoServer means no RDAP endpoint is known for the registry key.
	KindNoServer ErrorKind = "no_server"
	// KindHTTPStatus means the registry answered with a non-success status.
	KindHTTPStatus ErrorKind = "http_status"
	// KindTimeout means the query exceeded its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindTransport covers network errors and malformed response bodies.
	KindTransport ErrorKind = "transport"
)

// LookupError is a failed protocol attempt. It is recoverable: the
// orchestrator treats it as a fallback trigger.
type LookupError struct {
	Method string
	Kind   ErrorKind
	Domain string
	Status int
	Err    error
	Msg    string
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindNoServer:
		return fmt.Sprintf("%s lookup for %s: %s", e.Method, e.Domain, e.Msg)
	case KindTimeout:
		return fmt.Sprintf("%s lookup for %s timed out", e.Method, e.Domain)
	case KindHTTPStatus:
		if e.Msg != "" {
			return fmt.Sprintf("%s lookup for %s: HTTP %d: %s", e.Method, e.Domain, e.Status, e.Msg)
		}
		return fmt.Sprintf("%s lookup for %s: HTTP %d", e.Method, e.Domain, e.Status)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s lookup for %s: %v", e.Method, e.Domain, e.Err)
		}
		return fmt.Sprintf("%s lookup for %s: %s", e.Method, e.Domain, e.Msg)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// DualLookupError is the terminal failure when both protocols errored.
type DualLookupError struct {
	Domain       string
	PrimaryName  string
	PrimaryErr   error
	FallbackName string
	FallbackErr  error
}

func (e *DualLookupError) Error() string {
	return fmt.Sprintf("lookup for %s failed: %s: %v; %s: %v",
		e.Domain, e.PrimaryName, e.PrimaryErr, e.FallbackName, e.FallbackErr)
}
