package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

// LoadTargets reads a "subreddit,pages" CSV with a header row. Rows with an
// invalid name are skipped; a missing or non-positive page count means one page.
func LoadTargets(path string) ([]domain.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open targets")
	}
	defer f.Close()

	return ReadTargets(f)
}

// ReadTargets is LoadTargets over any reader.
func ReadTargets(src io.Reader) ([]domain.Target, error) {
	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(src))
	r.FieldsPerRecord = -1

	var targets []domain.Target
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "targets line %d", line+1)
		}
		line++
		if line == 1 {
			continue // Skip header
		}

		// Validation (Fail-Soft)
		sub := strings.TrimSpace(record[0])
		if !subNameRegex.MatchString(sub) {
			continue
		}

		pages := 1
		if len(record) > 1 {
			if n, err := strconv.Atoi(strings.TrimSpace(record[1])); err == nil && n > 0 {
				pages = n
			}
		}

		targets = append(targets, domain.Target{
			Subreddit: sub,
			Pages:     pages,
		})
	}
	return targets, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
