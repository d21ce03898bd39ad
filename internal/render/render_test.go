package render

import (
	"bufio"
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

func sample() []domain.Listing {
	return []domain.Listing{
		domain.NewListing(domain.LinkData{ID: "a", Title: "Snow day at Grounds", Author: "wahoo", Score: 120, NumComments: 14}),
		domain.NewListing(domain.CommentData{Body: "nice", Author: "hoos", Score: 2}),
		domain.NewListing(domain.MoreData{}),
	}
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf)

	tbl.Render(sample())
	out := buf.String()

	assert.Contains(t, out, "Snow day at Grounds")
	assert.Contains(t, out, "Submitted by wahoo. Score 120")
	assert.Contains(t, out, "14")
	assert.Contains(t, out, "Comment by hoos. Score 2")
	assert.Contains(t, out, "[more]")
	assert.Len(t, tbl.Snapshot(), 3)
}

func TestTable_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf)
	tbl.Render(sample())
	buf.Reset()

	tbl.Render(nil)
	assert.Equal(t, "(no posts)\n", buf.String())
	assert.Empty(t, tbl.Snapshot())
}

func TestTable_NotifyAndOpen(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf)

	tbl.NotifyError(errors.New("http error: status 503"))
	tbl.OpenLink("https://example.com/a")

	assert.Equal(t,
		"Network error. Please try again later. (http error: status 503)\nopen https://example.com/a\n",
		buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", truncate("éééééé", 4))
}

func TestStreamWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &StreamWriter{Out: &buf}

	input := make(chan domain.Listing)
	var wg sync.WaitGroup
	wg.Add(1)
	go w.Start(&wg, input)

	for _, l := range sample() {
		input <- l
	}
	close(input)
	wg.Wait()

	var lines []string
	sc := bufio.NewScanner(strings.NewReader(buf.String()))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.Len(t, lines, 3)

	first, err := domain.DecodeOneFromBytes([]byte(lines[0]))
	require.NoError(t, err)
	link, ok := first.Link()
	require.True(t, ok)
	assert.Equal(t, "Snow day at Grounds", link.Title)

	assert.JSONEq(t, `{"kind":"more","data":{}}`, lines[2])
}
