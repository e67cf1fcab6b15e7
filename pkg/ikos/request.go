package ikos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// ContentTypeUndefined passed as CallOptions.ContentType omits the
// Content-Type header and lets the transport pick one.
const ContentTypeUndefined = "undefined"

// Params are query string parameters. Nil values are skipped, slices repeat
// the key, maps and structs are sent as JSON.
type Params map[string]any

// Encode renders p as a query string with keys in sorted order.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// Values converts p to url.Values.
func (p Params) Values() url.Values {
	values := url.Values{}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := p[k].(type) {
		case nil:
		case string:
			values.Add(k, v)
		case []string:
			for _, s := range v {
				values.Add(k, s)
			}
		case []any:
			for _, item := range v {
				if item != nil {
					values.Add(k, paramString(item))
				}
			}
		default:
			values.Add(k, paramString(v))
		}
	}
	return values
}

func paramString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case map[string]any, Object, Params:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// CallOptions tune how Raw and the write helpers classify and send a call.
type CallOptions struct {
	// AlwaysResolve returns the body even when the envelope reports an
	// error. Callers must then inspect the body themselves.
	AlwaysResolve bool

	// ContentType forces the Content-Type header on non-GET requests.
	// ContentTypeUndefined removes it instead.
	ContentType string
}

// Request describes one outbound call. It is built by Raw and handed to the
// Transport.
type Request struct {
	Method string
	URL    string
	Params Params
	Body   any
	Header http.Header
}

// NormalizeMethod upper-cases method and falls back to GET for anything
// other than GET, POST, PUT or DELETE.
func NormalizeMethod(method string) string {
	m := strings.ToUpper(method)
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return m
	default:
		return http.MethodGet
	}
}

// newRequest builds the descriptor for one call.
func newRequest(baseURL, method, endpoint string, params Params, body any, opts CallOptions) *Request {
	req := &Request{
		Method: NormalizeMethod(method),
		URL:    baseURL + endpoint,
		Params: params,
		Body:   body,
		Header: http.Header{},
	}

	if opts.ContentType != "" && req.Method != http.MethodGet {
		if opts.ContentType != ContentTypeUndefined {
			req.Header.Set("Content-Type", opts.ContentType)
		}
	}

	return req
}

// EscapeSegment escapes s for use as a single URL path segment. It escapes
// the same set of characters as JavaScript's encodeURIComponent.
func EscapeSegment(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for enc, dec := range map[string]string{
		"%21": "!",
		"%27": "'",
		"%28": "(",
		"%29": ")",
		"%2A": "*",
	} {
		escaped = strings.ReplaceAll(escaped, enc, dec)
	}
	return escaped
}
