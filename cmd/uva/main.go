package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/huynhtran1509/reddit-uva/internal/collector"
	"github.com/huynhtran1509/reddit-uva/internal/config"
	"github.com/huynhtran1509/reddit-uva/internal/dashboard"
	"github.com/huynhtran1509/reddit-uva/internal/domain"
	"github.com/huynhtran1509/reddit-uva/internal/feed"
	"github.com/huynhtran1509/reddit-uva/internal/ingest"
	"github.com/huynhtran1509/reddit-uva/internal/render"
)

const numWorkers = 2

func main() {
	subreddit := flag.String("subreddit", "", "subreddit to browse (default from REDDIT_SUBREDDIT)")
	targetsPath := flag.String("targets", "", "CSV of subreddit,pages to dump as NDJSON instead of browsing")
	flag.Parse()

	// 1. Setup
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	client, err := collector.New(cfg.Collector, logger)
	if err != nil {
		logger.Error("failed to initialize collector", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Graceful Shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	// 3. Batch mode
	if *targetsPath != "" {
		targets, err := ingest.LoadTargets(*targetsPath)
		if err != nil {
			logger.Error("failed to load targets", "error", err)
			os.Exit(1)
		}
		runBatch(ctx, client, targets, os.Stdout, logger)
		return
	}

	// 4. Interactive mode
	sub := *subreddit
	if sub == "" {
		sub = cfg.Subreddit
	}
	table := render.NewTable(os.Stdout)

	if cfg.Dashboard != "" {
		go func() {
			logger.Info("starting dashboard", "addr", cfg.Dashboard)
			if err := dashboard.StartServer(cfg.Dashboard, table.Snapshot); err != nil {
				logger.Error("dashboard failed", "error", err)
			}
		}()
	}

	f := feed.New(client, sub, table, logger)
	go func() {
		defer cancel()
		runCommands(os.Stdin, os.Stdout, f, table)
	}()

	f.LoadNext()
	f.Run(ctx)
}

// runCommands reads user commands until quit or EOF.
func runCommands(in io.Reader, out io.Writer, f *feed.Feed, table *render.Table) {
	fmt.Fprintln(out, "commands: more (or empty line), reset, open N, quit")
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			fields = []string{"more"}
		}

		switch fields[0] {
		case "more", "m":
			f.ReachedItem(len(table.Snapshot()) - 1)
		case "reset", "r":
			f.Reset()
		case "open", "o":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: open N")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintln(out, "usage: open N")
				continue
			}
			f.Open(n)
		case "quit", "q", "exit":
			return
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}
	}
}

// runBatch pages every target for its page budget and streams each child
// listing as NDJSON.
func runBatch(ctx context.Context, client *collector.Client, targets []domain.Target, out io.Writer, logger *slog.Logger) {
	jobQueue := make(chan domain.Target, len(targets))
	resultQueue := make(chan domain.Listing, 100)
	var workerWg sync.WaitGroup
	var writerWg sync.WaitGroup

	writer := &render.StreamWriter{Out: out, Logger: logger}
	writerWg.Add(1)
	go writer.Start(&writerWg, resultQueue)

	for i := 0; i < numWorkers; i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for t := range jobQueue {
				if err := pageTarget(ctx, client, t, resultQueue); err != nil {
					logger.Error("scrape failed", "subreddit", t.Subreddit, "error", err)
				}
			}
		}()
	}

	logger.Info("starting batch", "targets", len(targets))
	for _, t := range targets {
		jobQueue <- t
	}
	close(jobQueue)

	workerWg.Wait()
	close(resultQueue)
	writerWg.Wait()
	logger.Info("batch complete")
}

func pageTarget(ctx context.Context, client *collector.Client, t domain.Target, results chan<- domain.Listing) error {
	page := collector.PageOptions{}
	for i := 0; i < t.Pages; i++ {
		l, err := client.FetchPage(ctx, t.Subreddit, page)
		if err != nil {
			return err
		}
		data, ok := l.Page()
		if !ok || !data.HasChildren() {
			return feed.ErrUnexpectedPayload
		}
		for _, child := range data.Children {
			results <- child
		}
		if data.After == nil || *data.After == "" {
			return nil
		}
		page.After = *data.After
		page.Count += len(data.Children)
	}
	return nil
}
