package outbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, h http.HandlerFunc) Descriptor {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return Descriptor{Name: "books", BaseURI: srv.URL}
}

func TestClient_Call_Envelope(t *testing.T) {
	client := NewClient()

	t.Run("single data key is unwrapped", func(t *testing.T) {
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[{"title":"Go in Action"}]}`))
		})

		payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"title": "Go in Action"}}, payload)
	})

	t.Run("multi key object passes through", func(t *testing.T) {
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[],"meta":{"page":1}}`))
		})

		payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"data": []any{},
			"meta": map[string]any{"page": json.Number("1")},
		}, payload)
	})

	t.Run("empty object passes through", func(t *testing.T) {
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, payload)
	})

	t.Run("non json body is returned as text", func(t *testing.T) {
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>ok</html>`))
		})

		payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", payload)
	})

	t.Run("numbers keep their precision", func(t *testing.T) {
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"id":9007199254740993}}`))
		})

		payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books/1"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": json.Number("9007199254740993")}, payload)
	})
}

func TestClient_Call_Secret(t *testing.T) {
	client := NewClient()

	t.Run("secret is sent verbatim", func(t *testing.T) {
		var got string
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		})
		d.Secret = "s3cr3t-value"

		_, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t-value", got)
	})

	t.Run("no header without secret", func(t *testing.T) {
		var present bool
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, present = r.Header["Authorization"]
			_, _ = w.Write([]byte(`[]`))
		})

		_, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.NoError(t, err)
		assert.False(t, present)
	})
}

func TestClient_Call_RequestID(t *testing.T) {
	type key struct{}
	var got []string
	d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("X-Request-Id"))
		_, _ = w.Write([]byte(`[]`))
	})
	client := NewClient(WithRequestID(func(ctx context.Context) string {
		id, _ := ctx.Value(key{}).(string)
		return id
	}))

	_, err := client.Call(context.WithValue(t.Context(), key{}, "req-42"), d, Request{Method: http.MethodGet, Path: "/books"})
	require.NoError(t, err)
	_, err = client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
	require.NoError(t, err)

	assert.Equal(t, []string{"req-42", ""}, got)
}

func TestClient_Call_ParameterPlacement(t *testing.T) {
	client := NewClient()
	params := url.Values{"q": {"go"}, "sort": {"title"}}

	for _, method := range []string{http.MethodGet, http.MethodDelete, "get"} {
		t.Run(method+" uses the query string", func(t *testing.T) {
			var query url.Values
			var body []byte
			d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.Query()
				body, _ = io.ReadAll(r.Body)
				_, _ = w.Write([]byte(`[]`))
			})

			_, err := client.Call(t.Context(), d, Request{Method: method, Path: "/search", Params: params})
			require.NoError(t, err)
			assert.Equal(t, params, query)
			assert.Empty(t, body)
		})
	}

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		t.Run(method+" uses a form body", func(t *testing.T) {
			var rawQuery, contentType string
			var form url.Values
			d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				rawQuery = r.URL.RawQuery
				contentType = r.Header.Get("Content-Type")
				assert.NoError(t, r.ParseForm())
				form = r.PostForm
				_, _ = w.Write([]byte(`{"data":{"id":1}}`))
			})

			_, err := client.Call(t.Context(), d, Request{Method: method, Path: "/books", Params: params})
			require.NoError(t, err)
			assert.Empty(t, rawQuery)
			assert.Equal(t, "application/x-www-form-urlencoded", contentType)
			assert.Equal(t, params, form)
		})
	}

	t.Run("empty params add nothing", func(t *testing.T) {
		var rawQuery string
		var body []byte
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
			body, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`[]`))
		})

		_, err := client.Call(t.Context(), d, Request{Method: http.MethodPost, Path: "/books", Params: url.Values{}})
		require.NoError(t, err)
		assert.Empty(t, rawQuery)
		assert.Empty(t, body)
	})
}

func TestClient_Call_Path(t *testing.T) {
	client := NewClient()
	var path string
	d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	})
	d.BaseURI += "/api/"

	_, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
	require.NoError(t, err)
	assert.Equal(t, "/api/books", path)
}

func TestClient_Call_Failures(t *testing.T) {
	client := NewClient()

	t.Run("non 2xx is an http error", func(t *testing.T) {
		for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized, http.StatusInternalServerError} {
			d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			})

			payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
			require.Error(t, err)
			assert.Nil(t, payload)
			assert.ErrorIs(t, err, ErrHTTP)
			assert.NotErrorIs(t, err, ErrConnection)

			var oe *Error
			require.True(t, errors.As(err, &oe))
			assert.Equal(t, status, oe.StatusCode)
			assert.Equal(t, `{"error":"nope"}`, oe.Body)
			assert.Equal(t, "books", oe.Backend)
		}
	})

	t.Run("connection refused is a connection error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		d := Descriptor{Name: "books", BaseURI: srv.URL}
		srv.Close()

		payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.Error(t, err)
		assert.Nil(t, payload)
		assert.ErrorIs(t, err, ErrConnection)
		assert.Equal(t, KindConnection, KindOf(err))
	})

	t.Run("timeout is a connection error", func(t *testing.T) {
		release := make(chan struct{})
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		defer close(release)
		d.Timeout = 50 * time.Millisecond

		_, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConnection)
	})
}

func TestClient_Call_OversizedBody(t *testing.T) {
	body := `{"data":[{"title":"Go in Action","description":"` + strings.Repeat("x", 200) + `"}]}`
	d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	t.Run("body over the limit fails", func(t *testing.T) {
		client := NewClient()
		client.maxBody = int64(len(body)) - 1

		payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.Error(t, err)
		assert.Nil(t, payload)
		assert.ErrorIs(t, err, ErrBodyTooLarge)
		assert.ErrorIs(t, err, ErrConnection)
	})

	t.Run("body exactly at the limit is decoded", func(t *testing.T) {
		client := NewClient()
		client.maxBody = int64(len(body))

		payload, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.NoError(t, err)
		assert.IsType(t, []any{}, payload)
	})

	t.Run("default limit rejects a large valid document", func(t *testing.T) {
		big := `{"data":"` + strings.Repeat("a", maxSuccessBody) + `"}`
		d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(big))
		})

		payload, err := NewClient().Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		assert.Nil(t, payload)
		assert.ErrorIs(t, err, ErrBodyTooLarge)
	})
}

func TestOutcomeOf(t *testing.T) {
	failure := &Error{Kind: KindConnection, Backend: "authors", Err: context.Canceled}

	assert.Equal(t, "success", outcomeOf(t.Context(), nil))
	assert.Equal(t, "connection_error", outcomeOf(t.Context(), failure))
	assert.Equal(t, "http_error", outcomeOf(t.Context(), &Error{Kind: KindHTTP}))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Equal(t, "cancelled", outcomeOf(ctx, failure))
}

func TestClient_Call_CancelledByCaller(t *testing.T) {
	release := make(chan struct{})
	d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewClient().Call(ctx, d, Request{Method: http.MethodGet, Path: "/authors"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "cancelled", outcomeOf(ctx, err))
}

func TestClient_WithRateLimit(t *testing.T) {
	calls := 0
	d := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	})
	client := NewClient(WithRateLimit(1000))

	for i := 0; i < 3; i++ {
		_, err := client.Call(t.Context(), d, Request{Method: http.MethodGet, Path: "/books"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestDecodePayload(t *testing.T) {
	assert.Equal(t, "", DecodePayload(nil))
	assert.Equal(t, "not json", DecodePayload([]byte("not json")))
	assert.Equal(t, json.Number("42"), DecodePayload([]byte(`{"data":42}`)))
	assert.Nil(t, DecodePayload([]byte(`{"data":null}`)))
	assert.Equal(t, []any{json.Number("1"), "a"}, DecodePayload([]byte(`[1,"a"]`)))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://h/books", joinURL("http://h", "/books"))
	assert.Equal(t, "http://h/books", joinURL("http://h/", "books"))
	assert.Equal(t, "http://h", joinURL("http://h/", ""))
}
