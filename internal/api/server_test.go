package api

import (
	"encoding/json/v2"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/metadata/openlibrary"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/service"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/store/sqlite"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/validation"
)

// newTestServer builds a full server over a temp SQLite store and a stub
// OpenLibrary upstream.
func newTestServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()

	log := logger.New(logger.Config{Writer: io.Discard})

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	if upstream == nil {
		upstream = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}
	upstreamSrv := httptest.NewServer(upstream)
	t.Cleanup(upstreamSrv.Close)

	client := openlibrary.NewClient(log,
		openlibrary.WithBaseURL(upstreamSrv.URL),
		openlibrary.WithRequestsPerSecond(1000),
	)
	v := validation.New()

	return NewServer(
		st,
		service.NewCatalogService(st, client, v, log),
		service.NewStatsService(st, log),
		service.NewUserService(st, v, log),
		service.NewReadingListService(st, v, log),
		log,
	)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the response wrapper for decoding in tests.
type envelope struct {
	V       int            `json:"v"`
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

const searchBody = `{
	"numFound": 1,
	"start": 0,
	"docs": [{"key": "/works/OL1W", "title": "Dune", "author_name": ["Frank Herbert"], "first_publish_year": 1965}]
}`

const workBody = `{
	"key": "/works/OL1W",
	"title": "Dune",
	"description": {"type": "/type/text", "value": "Spice and sand."},
	"covers": [111],
	"authors": [{"author": {"key": "/authors/OL1A"}}]
}`

func catalogUpstream(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search.json":
			io.WriteString(w, searchBody)
		case r.URL.Path == "/works/OL1W.json":
			io.WriteString(w, workBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data["status"])
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/search?q=dune", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, float64(1), env.Data["num_found"])

	results, ok := env.Data["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	hit := results[0].(map[string]any)
	assert.Equal(t, "OL1W", hit["work_id"])
	assert.Equal(t, "Dune", hit["title"])

	// The search landed in the dashboard counters.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	assert.Equal(t, float64(1), env.Data["total_searches"])
}

func TestSearchEndpointMissingQuery(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/search", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSearchEndpointUpstreamDown(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/search?q=dune", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var apiErr struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", apiErr.Code)

	// Failed searches do not count.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/dashboard", "")
	env := decodeEnvelope(t, rec)
	assert.Equal(t, float64(0), env.Data["total_searches"])
}

func TestAdvancedSearchEndpoint(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/search/advanced?title=dune&author=herbert", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Advanced searches stay out of the history.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/dashboard", "")
	env := decodeEnvelope(t, rec)
	assert.Equal(t, float64(0), env.Data["total_searches"])
}

func TestBookDetailEndpointCaches(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/books/OL1W", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "OL1W", env.Data["open_library_id"])
	assert.Equal(t, "Dune", env.Data["title"])
	assert.Equal(t, "OL1A", env.Data["author"])
	assert.Equal(t, "Spice and sand.", env.Data["description"])
	firstID := env.Data["id"]

	// Second view returns the same cached row.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/books/OL1W", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	assert.Equal(t, firstID, env.Data["id"])

	// Cached book shows up on the home view.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/home", "")
	env = decodeEnvelope(t, rec)
	recent, ok := env.Data["recent_books"].([]any)
	require.True(t, ok)
	assert.Len(t, recent, 1)
}

func TestBookDetailEndpointNotFound(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/books/OL9W", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	// Cache the book by viewing it; export serves the cache only.
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/books/OL1W", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/books/OL1W/export", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Dune.txt")

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Title: Dune", lines[0])
	assert.Equal(t, "Author: OL1A", lines[1])
	assert.Equal(t, "Description: Spice and sand.", lines[2])
	assert.Equal(t, "First Published: Unknown", lines[3])
}

func TestExportEndpointUncached(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/books/OL1W/export", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The failed export must not have cached the work.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/dashboard", "")
	env := decodeEnvelope(t, rec)
	assert.Equal(t, float64(0), env.Data["total_books"])
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/users",
		`{"username": "reader", "email": "reader@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	userID, ok := env.Data["id"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(userID, "usr-"))

	// Duplicate email conflicts.
	rec = doRequest(t, srv, http.MethodPost, "/api/v1/users",
		`{"username": "other", "email": "reader@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/users/"+userID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/v1/users/"+userID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/users/"+userID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReadingListLifecycle(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/users",
		`{"username": "reader", "email": "reader@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	userID := decodeEnvelope(t, rec).Data["id"].(string)

	// Cache a book by viewing it.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/books/OL1W", "")
	require.Equal(t, http.StatusOK, rec.Code)
	bookID := decodeEnvelope(t, rec).Data["id"].(string)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/reading-lists",
		`{"user_id": "`+userID+`", "name": "Sci-Fi"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	listID := decodeEnvelope(t, rec).Data["id"].(string)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/reading-lists/"+listID+"/books",
		`{"book_id": "`+bookID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Want to Read", decodeEnvelope(t, rec).Data["status"])

	// Duplicate add conflicts.
	rec = doRequest(t, srv, http.MethodPost, "/api/v1/reading-lists/"+listID+"/books",
		`{"book_id": "`+bookID+`"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, srv, http.MethodPatch, "/api/v1/reading-lists/"+listID+"/books/"+bookID,
		`{"status": "Completed", "rating": 5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	entry := decodeEnvelope(t, rec).Data
	assert.Equal(t, "Completed", entry["status"])
	assert.NotEmpty(t, entry["completed_at"])

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/users/"+userID+"/reading-lists", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/v1/reading-lists/"+listID+"/books/"+bookID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/v1/reading-lists/"+listID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadingListBadRating(t *testing.T) {
	srv := newTestServer(t, catalogUpstream(t))

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/users",
		`{"username": "reader", "email": "reader@example.com"}`)
	userID := decodeEnvelope(t, rec).Data["id"].(string)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/books/OL1W", "")
	bookID := decodeEnvelope(t, rec).Data["id"].(string)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/reading-lists",
		`{"user_id": "`+userID+`", "name": "Sci-Fi"}`)
	listID := decodeEnvelope(t, rec).Data["id"].(string)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/reading-lists/"+listID+"/books",
		`{"book_id": "`+bookID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPatch, "/api/v1/reading-lists/"+listID+"/books/"+bookID,
		`{"status": "Completed", "rating": 9}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
