package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/archivio/antenati/pkg/iiif"
	"github.com/archivio/antenati/pkg/naming"
)

const (
	DefaultWorkers     = 8
	DefaultConnections = 4
)

// Options bounds a fetch run. Workers caps parallel download units,
// Connections caps simultaneous sockets to the image host. They are
// independent: with more workers than connections the excess workers
// queue on the connection pool instead of opening new sockets.
type Options struct {
	Workers     int
	Connections int
	Referer     string
}

// SlugCollisionError means two canvas labels map to the same file name,
// which would make one page silently overwrite the other.
type SlugCollisionError struct {
	Name   string
	Labels [2]string
}

func (e *SlugCollisionError) Error() string {
	return fmt.Sprintf("labels %q and %q both map to %q", e.Labels[0], e.Labels[1], e.Name)
}

// Engine downloads every canvas of a gallery under the bounds given in
// Options and writes the images into an explicit destination directory.
type Engine struct {
	referer string
	log     *zap.Logger
}

func NewEngine(referer string, log *zap.Logger) *Engine {
	if referer == "" {
		referer = iiif.DefaultReferer
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{referer: referer, log: log}
}

// Run fetches every canvas image into dir and returns the total bytes
// written. Units run concurrently; a failed unit does not cancel its
// siblings, which drain before the first failure is returned. Files
// written by successful units are kept either way.
func (e *Engine) Run(ctx context.Context, canvases []iiif.Canvas, dir string, opts Options, sink ProgressSink) (int64, error) {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Connections <= 0 {
		opts.Connections = DefaultConnections
	}
	if sink == nil {
		sink = NopSink{}
	}

	bases, err := fileBases(canvases)
	if err != nil {
		return 0, err
	}

	transport := &http.Transport{
		// Blocks requests beyond the cap until a connection frees,
		// keeping upstream load independent of the worker count.
		MaxConnsPerHost:     opts.Connections,
		MaxIdleConnsPerHost: opts.Connections,
	}
	defer transport.CloseIdleConnections()
	client := &http.Client{Transport: transport}

	sink.SetTotal(len(canvases))
	e.log.Debug("fetch run started",
		zap.Int("pages", len(canvases)),
		zap.Int("workers", opts.Workers),
		zap.Int("connections", opts.Connections))

	var total atomic.Int64
	// Zero-value group: no shared cancellation, so in-flight and queued
	// units run to completion and Wait reports the first failure.
	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, canvas := range canvases {
		base := bases[i]
		g.Go(func() error {
			n, err := e.fetchOne(ctx, client, canvas, dir, base)
			sink.Tick()
			if err != nil {
				return err
			}
			total.Add(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}

// fileBases slugs every canvas label up front and rejects the run when
// two labels collide on the same name.
func fileBases(canvases []iiif.Canvas) ([]string, error) {
	bases := make([]string, len(canvases))
	seen := make(map[string]string, len(canvases))
	for i, canvas := range canvases {
		base := naming.Slug(canvas.Label)
		if prev, ok := seen[base]; ok {
			return nil, &SlugCollisionError{Name: base, Labels: [2]string{prev, canvas.Label}}
		}
		seen[base] = canvas.Label
		bases[i] = base
	}
	return bases, nil
}

func (e *Engine) fetchOne(ctx context.Context, client *http.Client, canvas iiif.Canvas, dir, base string) (int64, error) {
	url := canvas.ResourceID()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("canvas %q: %w", canvas.Label, err)
	}
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Referer", e.referer)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &iiif.UpstreamError{URL: url, Status: resp.StatusCode}
	}
	ext, err := naming.ExtensionFor(resp.Header.Get("Content-Type"))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", url, err)
	}

	path := filepath.Join(dir, base+ext)
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	e.log.Debug("page downloaded", zap.String("file", path), zap.Int64("bytes", n))
	return n, nil
}
