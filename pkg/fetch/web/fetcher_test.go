package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>t</title><style>p{color:red}</style></head>
<body><h1>Tender Announcement</h1><p>Budget: &euro;50,000 &amp; rising.</p>
<script>alert("hi")</script></body></html>`))
	}))
	defer server.Close()

	fetcher, err := NewFetcher(nil)
	require.NoError(t, err)

	text, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Tender Announcement")
	assert.Contains(t, text, "& rising")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color:red")
	assert.NotContains(t, text, "<p>")
}

func TestFetcher_FetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher, err := NewFetcher(nil)
	require.NoError(t, err)

	_, err = fetcher.Fetch(t.Context(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_SendsConfiguredHeaders(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	fetcher, err := NewFetcher(map[string]any{
		"timeout": float64(5),
		"headers": map[string]any{"Authorization": "Bearer token123"},
	})
	require.NoError(t, err)

	_, err = fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token123", gotAuth)
}

func TestExtractText_BlockBoundaries(t *testing.T) {
	text := extractText("<div>first</div><div>second</div>")

	assert.Contains(t, text, "first")
	assert.Contains(t, text, "second")
	assert.NotContains(t, text, "firstsecond")
}
