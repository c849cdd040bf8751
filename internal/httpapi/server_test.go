package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"PaperIndexer/internal/domain"
)

type fakeQueries struct {
	recentFn  func(category string, limit int) ([]domain.Item, error)
	authorFn  func(author string) ([]domain.Item, error)
	byIDFn    func(id string) (*domain.Item, error)
	rangeFn   func(category, start, end string) ([]domain.Item, error)
	keywordFn func(keyword string, limit int) ([]domain.Item, error)
}

func (f *fakeQueries) RecentInCategory(_ context.Context, category string, limit int) ([]domain.Item, error) {
	if f.recentFn != nil {
		return f.recentFn(category, limit)
	}
	return nil, nil
}

func (f *fakeQueries) PapersByAuthor(_ context.Context, author string) ([]domain.Item, error) {
	if f.authorFn != nil {
		return f.authorFn(author)
	}
	return nil, nil
}

func (f *fakeQueries) PaperByID(_ context.Context, id string) (*domain.Item, error) {
	if f.byIDFn != nil {
		return f.byIDFn(id)
	}
	return nil, nil
}

func (f *fakeQueries) PapersInDateRange(_ context.Context, category, start, end string) ([]domain.Item, error) {
	if f.rangeFn != nil {
		return f.rangeFn(category, start, end)
	}
	return nil, nil
}

func (f *fakeQueries) PapersByKeyword(_ context.Context, keyword string, limit int) ([]domain.Item, error) {
	if f.keywordFn != nil {
		return f.keywordFn(keyword, limit)
	}
	return nil, nil
}

func doGet(t *testing.T, q *fakeQueries, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	srv := New(q, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler().ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRecentHappyPath(t *testing.T) {
	t.Parallel()

	q := &fakeQueries{recentFn: func(category string, limit int) ([]domain.Item, error) {
		require.Equal(t, "cs.AI", category)
		require.Equal(t, 5, limit)
		return []domain.Item{{ArxivID: "1"}, {ArxivID: "2"}}, nil
	}}

	rec, body := doGet(t, q, "/papers/recent?category=cs.AI&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "cs.AI", body["category"])
	require.Equal(t, float64(2), body["count"])
	require.Len(t, body["papers"], 2)
}

func TestRecentMissingCategory(t *testing.T) {
	t.Parallel()

	rec, body := doGet(t, &fakeQueries{}, "/papers/recent")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "missing category", body["error"])
}

func TestRecentInvalidLimit(t *testing.T) {
	t.Parallel()

	rec, body := doGet(t, &fakeQueries{}, "/papers/recent?category=cs.AI&limit=abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid limit", body["error"])
}

func TestRecentDefaultLimit(t *testing.T) {
	t.Parallel()

	q := &fakeQueries{recentFn: func(_ string, limit int) ([]domain.Item, error) {
		require.Equal(t, defaultLimit, limit)
		return nil, nil
	}}

	rec, body := doGet(t, q, "/papers/recent?category=cs.AI")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(0), body["count"])
	// Empty results serialize as [] rather than null.
	require.NotNil(t, body["papers"])
}

func TestAuthorURLDecoded(t *testing.T) {
	t.Parallel()

	q := &fakeQueries{authorFn: func(author string) ([]domain.Item, error) {
		require.Equal(t, "Jane Doe", author)
		return []domain.Item{{ArxivID: "1"}}, nil
	}}

	rec, body := doGet(t, q, "/papers/author/Jane%20Doe")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Jane Doe", body["author_name"])
	require.Equal(t, float64(1), body["count"])
}

func TestKeywordLimit(t *testing.T) {
	t.Parallel()

	q := &fakeQueries{keywordFn: func(keyword string, limit int) ([]domain.Item, error) {
		require.Equal(t, "network", keyword)
		require.Equal(t, 3, limit)
		return nil, nil
	}}

	rec, body := doGet(t, q, "/papers/keyword/network?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "network", body["keyword"])
}

func TestDateRangeRequiresAllParams(t *testing.T) {
	t.Parallel()

	rec, body := doGet(t, &fakeQueries{}, "/papers/search?category=cs.AI&start=2024-01-01")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "missing category/start/end", body["error"])
}

func TestDateRangeHappyPath(t *testing.T) {
	t.Parallel()

	q := &fakeQueries{rangeFn: func(category, start, end string) ([]domain.Item, error) {
		require.Equal(t, "cs.AI", category)
		require.Equal(t, "2024-01-01", start)
		require.Equal(t, "2024-01-31", end)
		return []domain.Item{{ArxivID: "1"}}, nil
	}}

	rec, body := doGet(t, q, "/papers/search?category=cs.AI&start=2024-01-01&end=2024-01-31")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2024-01-31", body["end"])
	require.Equal(t, float64(1), body["count"])
}

func TestPaperByIDFound(t *testing.T) {
	t.Parallel()

	q := &fakeQueries{byIDFn: func(id string) (*domain.Item, error) {
		require.Equal(t, "2401.12345", id)
		return &domain.Item{ArxivID: id, Title: "Graph Networks", ItemType: domain.TypePaperDetail}, nil
	}}

	rec, body := doGet(t, q, "/papers/2401.12345")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Graph Networks", body["title"])
	// Storage key attributes never leak into responses.
	require.NotContains(t, body, "PK")
	require.NotContains(t, body, "GSI3PK")
}

func TestPaperByIDNotFound(t *testing.T) {
	t.Parallel()

	rec, body := doGet(t, &fakeQueries{}, "/papers/9999.00000")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not found", body["error"])
}

func TestUnmatchedPathIs404(t *testing.T) {
	t.Parallel()

	rec, body := doGet(t, &fakeQueries{}, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not found", body["error"])
}

func TestStoreFailureIs500WithGenericBody(t *testing.T) {
	t.Parallel()

	q := &fakeQueries{recentFn: func(string, int) ([]domain.Item, error) {
		return nil, errors.New("connection reset by peer")
	}}

	rec, body := doGet(t, q, "/papers/recent?category=cs.AI")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "server error", body["error"])
	require.NotContains(t, rec.Body.String(), "connection reset")
}
