package dashboard

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestHandler_Charts(t *testing.T) {
	h := NewHandler(func() []domain.Listing {
		return []domain.Listing{
			domain.NewListing(domain.LinkData{Title: "Lawn sunset", Score: 300}),
			domain.NewListing(domain.LinkData{Title: "Dining hall hours", Score: 12, IsSelf: true}),
			domain.NewListing(domain.CommentData{Body: "ignored"}),
		}
	})

	code, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Top Scores")
	assert.Contains(t, body, "Self vs Link Posts")
	assert.Contains(t, body, "Lawn sunset")
}

func TestHandler_EmptySnapshot(t *testing.T) {
	h := NewHandler(func() []domain.Listing { return nil })

	code, _ := get(t, h, "/")
	assert.Equal(t, http.StatusOK, code)
}

func TestHandler_Metrics(t *testing.T) {
	h := NewHandler(func() []domain.Listing { return nil })

	code, body := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "go_goroutines")
}

func TestHandler_UnknownPath(t *testing.T) {
	h := NewHandler(func() []domain.Listing { return nil })

	code, _ := get(t, h, "/favicon.ico")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLinksOf(t *testing.T) {
	links := linksOf([]domain.Listing{
		domain.NewListing(domain.LinkData{ID: "a"}),
		domain.NewListing(domain.MoreData{}),
		domain.NewListing(domain.LinkData{ID: "b"}),
	})
	require.Len(t, links, 2)
	assert.Equal(t, "b", links[1].ID)
}
