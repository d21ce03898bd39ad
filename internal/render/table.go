// Package render turns listings into terminal output.
package render

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/olekukonko/tablewriter"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

const maxTitle = 60

// Table prints the feed as a table and keeps the last rendered sequence for
// other readers such as the dashboard. It implements feed.Sink.
type Table struct {
	mu   sync.Mutex
	out  io.Writer
	last []domain.Listing
}

func NewTable(out io.Writer) *Table {
	return &Table{out: out}
}

func (t *Table) Render(items []domain.Listing) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = items

	if len(items) == 0 {
		fmt.Fprintln(t.out, "(no posts)")
		return
	}

	table := tablewriter.NewWriter(t.out)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Title", "Details", "Comments"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows(items))
	table.Render()
}

// NotifyError prints a generic retry prompt followed by the cause.
func (t *Table) NotifyError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "Network error. Please try again later. (%v)\n", err)
}

func (t *Table) OpenLink(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "open %s\n", url)
}

// Snapshot returns a copy of the last rendered sequence.
func (t *Table) Snapshot() []domain.Listing {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Listing, len(t.last))
	copy(out, t.last)
	return out
}

func rows(items []domain.Listing) [][]string {
	data := make([][]string, 0, len(items))
	for i, it := range items {
		row := []string{strconv.Itoa(i), "", "", ""}
		switch p := it.Payload().(type) {
		case domain.LinkData:
			row[1] = truncate(p.Title, maxTitle)
			row[2] = fmt.Sprintf("Submitted by %s. Score %d", p.Author, p.Score)
			row[3] = strconv.Itoa(p.NumComments)
		case domain.CommentData:
			row[1] = truncate(p.Body, maxTitle)
			row[2] = fmt.Sprintf("Comment by %s. Score %d", p.Author, p.Score)
		default:
			row[1] = "[" + it.Kind().String() + "]"
		}
		data = append(data, row)
	}
	return data
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
