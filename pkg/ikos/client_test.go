package ikos_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
	"github.com/hashicorp-forge/ikos/pkg/ikos/ikostest"
)

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		client, err := ikos.New(nil)
		require.NoError(t, err)
		assert.Equal(t, "/", client.BaseURL())
	})

	t.Run("empty base url defaults to slash", func(t *testing.T) {
		client, err := ikos.New(&ikos.Config{})
		require.NoError(t, err)
		assert.Equal(t, "/", client.BaseURL())
	})

	t.Run("base url without trailing slash", func(t *testing.T) {
		_, err := ikos.New(&ikos.Config{BaseURL: "https://ikos.example.com/api"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "trailing")
	})
}

func TestClient_Raw_Classification(t *testing.T) {
	ctx := context.Background()

	t.Run("success resolves with full body", func(t *testing.T) {
		tr := ikostest.New()
		tr.Response = ikostest.JSON(map[string]any{
			"response": map[string]any{"code": 200},
			"data":     []any{"a"},
		})
		client := ikostest.NewClient(t, tr)

		resp, err := client.Raw(ctx, "GET", "x", nil, nil, ikos.CallOptions{})
		require.NoError(t, err)
		assert.Equal(t, []any{"a"}, resp["data"])
		assert.NotNil(t, resp["response"])
	})

	t.Run("response error rejects with embedded message", func(t *testing.T) {
		tr := ikostest.New()
		tr.Response = ikostest.JSON(map[string]any{
			"response": map[string]any{"error": map[string]any{"message": "bad"}},
		})
		client := ikostest.NewClient(t, tr)

		resp, err := client.Raw(ctx, "GET", "x", nil, nil, ikos.CallOptions{})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ikos.ErrAPILogic)

		var ikosErr *ikos.Error
		require.True(t, errors.As(err, &ikosErr))
		assert.Equal(t, "bad", ikosErr.Message())
	})

	t.Run("always resolve returns the body", func(t *testing.T) {
		body := map[string]any{
			"response": map[string]any{"error": map[string]any{"message": "bad"}},
		}
		tr := ikostest.New()
		tr.Response = ikostest.JSON(body)
		client := ikostest.NewClient(t, tr)

		resp, err := client.Raw(ctx, "POST", "x", nil, nil, ikos.CallOptions{AlwaysResolve: true})
		require.NoError(t, err)
		assert.Equal(t, ikos.Response{
			"response": map[string]any{"error": map[string]any{"message": "bad"}},
		}, resp)
	})

	t.Run("top-level error key", func(t *testing.T) {
		tr := ikostest.New()
		tr.Response = ikostest.JSON(map[string]any{
			"error": map[string]any{"message": "session expired"},
		})
		client := ikostest.NewClient(t, tr)

		_, err := client.Raw(ctx, "GET", "x", nil, nil, ikos.CallOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ikos.ErrAPILogic)
		assert.Equal(t, "Raw: session expired", err.Error())
	})

	t.Run("error without message uses fallback", func(t *testing.T) {
		tr := ikostest.New()
		tr.Response = ikostest.JSON(map[string]any{"error": map[string]any{}})
		client := ikostest.NewClient(t, tr)

		_, err := client.Raw(ctx, "GET", "x", nil, nil, ikos.CallOptions{})
		var ikosErr *ikos.Error
		require.True(t, errors.As(err, &ikosErr))
		assert.Equal(t, "No message from API.", ikosErr.Message())
	})

	t.Run("string error in response meta", func(t *testing.T) {
		tr := ikostest.New()
		tr.Response = ikostest.JSON(map[string]any{
			"response": map[string]any{"code": 400, "error": "invalid bucket"},
		})
		client := ikostest.NewClient(t, tr)

		_, err := client.Raw(ctx, "GET", "x", nil, nil, ikos.CallOptions{})
		var ikosErr *ikos.Error
		require.True(t, errors.As(err, &ikosErr))
		assert.Equal(t, "invalid bucket", ikosErr.Message())
	})

	t.Run("falsy response error is success", func(t *testing.T) {
		tr := ikostest.New()
		tr.Response = ikostest.JSON(map[string]any{
			"response": map[string]any{"code": 200, "error": ""},
			"data":     map[string]any{"_id": "1"},
		})
		client := ikostest.NewClient(t, tr)

		resp, err := client.Raw(ctx, "GET", "x", nil, nil, ikos.CallOptions{})
		require.NoError(t, err)
		id, err := ikos.ResolveWithDataID(resp)
		require.NoError(t, err)
		assert.Equal(t, "1", id)
	})

	t.Run("transport error is passed through", func(t *testing.T) {
		cause := &ikos.StatusError{StatusCode: 502, Status: "502 Bad Gateway"}
		tr := ikostest.New()
		tr.Err = cause
		client := ikostest.NewClient(t, tr)

		_, err := client.Raw(ctx, "GET", "x", nil, nil, ikos.CallOptions{AlwaysResolve: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, ikos.ErrTransport)

		var statusErr *ikos.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Same(t, cause, statusErr)
	})

	t.Run("empty body resolves to nil", func(t *testing.T) {
		tr := ikostest.New()
		tr.Response = &ikos.TransportResponse{StatusCode: http.StatusNoContent}
		client := ikostest.NewClient(t, tr)

		resp, err := client.Raw(ctx, "DELETE", "x", nil, nil, ikos.CallOptions{})
		require.NoError(t, err)
		assert.Nil(t, resp)

		_, err = ikos.ResolveWithData(resp)
		assert.ErrorIs(t, err, ikos.ErrEmptyResponse)
	})

	t.Run("non-object body", func(t *testing.T) {
		tr := ikostest.New()
		tr.Response = &ikos.TransportResponse{StatusCode: http.StatusOK, Body: []byte(`["a"]`)}
		client := ikostest.NewClient(t, tr)

		_, err := client.Raw(ctx, "GET", "x", nil, nil, ikos.CallOptions{})
		assert.ErrorIs(t, err, ikos.ErrMalformedResponse)
	})
}

func TestClient_Raw_NilTransportResponse(t *testing.T) {
	tr := &ikostest.Transport{}
	client := ikostest.NewClient(t, tr)

	resp, err := client.Raw(context.Background(), "GET", "x", nil, nil, ikos.CallOptions{})
	require.NoError(t, err)
	assert.Nil(t, resp)

	_, err = ikos.ResolveWithData(resp)
	assert.ErrorIs(t, err, ikos.ErrEmptyResponse)
}

func TestClient_Raw_Descriptor(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown method becomes GET", func(t *testing.T) {
		tr := ikostest.New()
		client := ikostest.NewClient(t, tr)

		_, err := client.Raw(ctx, "patch", "things", nil, nil, ikos.CallOptions{})
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, tr.Last().Method)
		assert.Equal(t, "/api/things", tr.Last().URL)
	})

	t.Run("undefined content type omits the header", func(t *testing.T) {
		tr := ikostest.New()
		client := ikostest.NewClient(t, tr)

		_, err := client.Raw(ctx, "POST", "f", nil, []byte("x"), ikos.CallOptions{ContentType: "undefined"})
		require.NoError(t, err)
		assert.Empty(t, tr.Last().Header.Get("Content-Type"))
	})
}

func TestClient_ConvenienceMethods(t *testing.T) {
	ctx := context.Background()
	tr := ikostest.New()
	client := ikostest.NewClient(t, tr)

	params := ikos.Params{"limit": 5}
	body := map[string]any{"k": "v"}

	_, err := client.Get(ctx, "g", params, false)
	require.NoError(t, err)
	req := tr.Last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, params, req.Params)
	assert.Nil(t, req.Body)

	for _, tc := range []struct {
		method string
		call   func() (ikos.Response, error)
	}{
		{http.MethodPost, func() (ikos.Response, error) {
			return client.Post(ctx, "w", body, params, ikos.CallOptions{ContentType: "text/plain"})
		}},
		{http.MethodPut, func() (ikos.Response, error) {
			return client.Put(ctx, "w", body, params, ikos.CallOptions{ContentType: "text/plain"})
		}},
		{http.MethodDelete, func() (ikos.Response, error) {
			return client.Delete(ctx, "w", body, params, ikos.CallOptions{ContentType: "text/plain"})
		}},
	} {
		t.Run(tc.method, func(t *testing.T) {
			_, err := tc.call()
			require.NoError(t, err)
			req := tr.Last()
			assert.Equal(t, tc.method, req.Method)
			assert.Equal(t, "/api/w", req.URL)
			assert.Equal(t, params, req.Params)
			assert.Equal(t, body, req.Body)
			assert.Equal(t, "text/plain", req.Header.Get("Content-Type"))
		})
	}
}

func TestClient_HTTPTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/crud/svc/read/id/object":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "b1", r.URL.Query().Get("buckets"))
			assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "v", body["k"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"response": map[string]any{"code": 200},
				"data":     map[string]any{"_id": "new-id"},
			})

		case "/api/file":
			assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
			raw, _ := io.ReadAll(r.Body)
			assert.Equal(t, "raw bytes", string(raw))
			w.Write([]byte(`{"response":{"code":200}}`))

		case "/api/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("not here"))

		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := ikos.New(&ikos.Config{
		BaseURL: server.URL + "/api/",
		Logger:  hclog.NewNullLogger(),
	})
	require.NoError(t, err)

	ctx := context.Background()

	resp, err := client.Post(ctx, "crud/svc/read/id/object", map[string]any{"k": "v"}, ikos.Params{"buckets": "b1"}, ikos.CallOptions{})
	require.NoError(t, err)
	id, err := ikos.ResolveWithDataID(resp)
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)

	_, err = client.Post(ctx, "file", []byte("raw bytes"), nil, ikos.CallOptions{ContentType: "application/octet-stream"})
	require.NoError(t, err)

	_, err = client.Get(ctx, "missing", nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ikos.ErrTransport)
	var statusErr *ikos.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "not here", string(statusErr.Body))
}

func TestClient_SessionCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			http.SetCookie(w, &http.Cookie{Name: "infinitecookie", Value: "s3ss10n", Path: "/"})
			w.Write([]byte(`{"response":{"code":200}}`))
			return
		}
		if c, err := r.Cookie("infinitecookie"); err != nil || c.Value != "s3ss10n" {
			w.Write([]byte(`{"response":{"code":401,"error":"not logged in"}}`))
			return
		}
		w.Write([]byte(`{"response":{"code":200},"data":{"_id":"me"}}`))
	}))
	defer server.Close()

	client, err := ikos.New(&ikos.Config{BaseURL: server.URL + "/"})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.Post(ctx, "auth/", map[string]any{}, nil, ikos.CallOptions{})
	require.NoError(t, err)

	resp, err := client.Get(ctx, "user/", nil, false)
	require.NoError(t, err)
	id, err := ikos.ResolveWithDataID(resp)
	require.NoError(t, err)
	assert.Equal(t, "me", id)
}
