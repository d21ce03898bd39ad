package dashboard

import (
	"net/http"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

const topN = 10

// Source returns the listings currently shown by the feed.
type Source func() []domain.Listing

// NewHandler serves the charts on / and Prometheus metrics on /metrics.
func NewHandler(source Source) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		links := linksOf(source())

		// 1. Top scores
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Top Scores"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)

		top := make([]domain.LinkData, len(links))
		copy(top, links)
		sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
		if len(top) > topN {
			top = top[:topN]
		}

		var barX []string
		var barY []opts.BarData
		for _, l := range top {
			barX = append(barX, l.Title)
			barY = append(barY, opts.BarData{Value: l.Score})
		}
		bar.SetXAxis(barX).AddSeries("Score", barY)

		// 2. Self vs link posts
		pie := charts.NewPie()
		pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Self vs Link Posts"}))

		counts := map[string]int{}
		for _, l := range links {
			if l.IsSelf {
				counts["self"]++
			} else {
				counts["link"]++
			}
		}
		var pieItems []opts.PieData
		for _, k := range []string{"self", "link"} {
			pieItems = append(pieItems, opts.PieData{Name: k, Value: counts[k]})
		}
		pie.AddSeries("Posts", pieItems)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		bar.Render(w)
		pie.Render(w)
	})
	return mux
}

// StartServer blocks serving NewHandler on addr.
func StartServer(addr string, source Source) error {
	return http.ListenAndServe(addr, NewHandler(source))
}

func linksOf(items []domain.Listing) []domain.LinkData {
	var links []domain.LinkData
	for _, it := range items {
		if l, ok := it.Link(); ok {
			links = append(links, l)
		}
	}
	return links
}
