package refresh

import (
	"context"
	"time"

	"github.com/pfrederiksen/events-refresh/internal/cache"
	"github.com/pfrederiksen/events-refresh/internal/fetcher"
	"github.com/pfrederiksen/events-refresh/internal/logger"
)

const (
	DefaultSourceURL = "https://workshops.de/api/course/21/events"
	DefaultDestPath  = "_data/events/docker-kubernetes-intensiv.json"
)

// Options controls a refresh. The zero value fetches DefaultSourceURL into
// DefaultDestPath with no timeout and no hardening stages.
type Options struct {
	SourceURL string
	DestPath  string
	Timeout   time.Duration

	// RejectNonSuccess fails on non-2xx responses instead of writing them.
	RejectNonSuccess bool
	// Validate fails on bodies that are not well-formed JSON.
	Validate bool
	// Atomic replaces the destination via temp file and rename.
	Atomic bool
}

func (o Options) withDefaults() Options {
	if o.SourceURL == "" {
		o.SourceURL = DefaultSourceURL
	}
	if o.DestPath == "" {
		o.DestPath = DefaultDestPath
	}
	return o
}

// Result describes a completed refresh
type Result struct {
	SourceURL  string        `json:"source_url"`
	DestPath   string        `json:"dest_path"`
	StatusCode int           `json:"status_code"`
	Bytes      int           `json:"bytes"`
	Duration   time.Duration `json:"duration"`
}

// FetchAndCacheEvents fetches the events document and overwrites the destination file with it.
func FetchAndCacheEvents(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	logger.IncrCounter("refresh.runs")
	result, err := run(ctx, opts)
	if err != nil {
		logger.IncrCounter("refresh.failures")
		return nil, err
	}

	logger.SetGauge("refresh.bytes", float64(result.Bytes))
	return result, nil
}

func run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	f := fetcher.New(opts.SourceURL, opts.Timeout)
	dest := cache.New(opts.DestPath)

	logger.Debug("Fetching events", logger.Fields{
		"url": opts.SourceURL,
	})

	resp, err := f.Fetch(ctx)
	logger.RecordTiming("refresh.fetch", time.Since(start))
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetched events", logger.Fields{
		"url":          opts.SourceURL,
		"status":       resp.StatusCode,
		"content_type": resp.ContentType,
		"bytes":        len(resp.Body),
	})

	if opts.RejectNonSuccess && !resp.Success() {
		return nil, &StatusError{URL: opts.SourceURL, StatusCode: resp.StatusCode}
	}

	if opts.Validate {
		if err := ValidateJSON(resp.Body); err != nil {
			return nil, err
		}
	}

	if opts.Atomic {
		err = dest.WriteAtomic(resp.Body)
	} else {
		err = dest.Write(resp.Body)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		SourceURL:  opts.SourceURL,
		DestPath:   dest.Path(),
		StatusCode: resp.StatusCode,
		Bytes:      len(resp.Body),
		Duration:   time.Since(start),
	}, nil
}
