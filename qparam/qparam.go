// Package qparam decodes request path and query values into record structs.
//
// Generated forwarding code declares one record type per route section, with
// a `schema` tag per extracted parameter, and calls DecodePath / DecodeQuery
// to populate it before invoking the handler. Records may additionally carry
// `validate` tags, which are checked after decoding.
package qparam

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	decoder  = schema.NewDecoder()
	validate = validator.New(validator.WithRequiredStructEnabled())
)

func init() {
	// Requests routinely carry query keys the handler never declared.
	decoder.IgnoreUnknownKeys(true)
}

// DecodeError reports a failure to decode or validate one parameter record.
type DecodeError struct {
	// Section is "path" or "query".
	Section string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s parameters: %v", e.Section, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeQuery populates dst, a pointer to a query record, from the request's
// URL query string and validates the result.
func DecodeQuery(r *http.Request, dst any) error {
	if err := decoder.Decode(dst, r.URL.Query()); err != nil {
		return &DecodeError{Section: "query", Err: err}
	}
	if err := validate.Struct(dst); err != nil {
		return &DecodeError{Section: "query", Err: err}
	}
	return nil
}

// DecodePath populates dst, a pointer to a path record, from the request's
// named path values and validates the result. The names are the capture and
// wildcard names of the registered route pattern.
func DecodePath(r *http.Request, dst any, names ...string) error {
	values := make(url.Values, len(names))
	for _, name := range names {
		values[name] = []string{r.PathValue(name)}
	}
	if err := decoder.Decode(dst, values); err != nil {
		return &DecodeError{Section: "path", Err: err}
	}
	if err := validate.Struct(dst); err != nil {
		return &DecodeError{Section: "path", Err: err}
	}
	return nil
}
