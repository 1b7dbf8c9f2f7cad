package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
)

// File is a fetched resource attached to a file input.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Fetcher retrieves the resource a file field points at. Implementations own
// their transport; the engine only sees the resulting bytes.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (File, error)
}

// HTTPFetcher fetches file resources over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch downloads the resource and derives a filename from the URL path.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (File, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return File{}, fmt.Errorf("update: build file request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return File{}, fmt.Errorf("update: fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return File{}, fmt.Errorf("update: fetch file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return File{}, fmt.Errorf("update: read file body: %w", err)
	}

	return File{
		Name:        fileName(rawURL),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func fileName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "download"
	}
	if name := path.Base(parsed.Path); name != "" && name != "." && name != "/" {
		return name
	}
	return "download"
}

// SampleDocument is the fixed attachment used for file fields in test mode.
var SampleDocument = File{
	Name:        "sample-document.txt",
	ContentType: "text/plain",
	Data:        []byte("Sample document used for automated form verification.\n"),
}

// fileUpdater attaches a fetched resource to a file input via a synthetic
// file list, represented on the tree as data attributes. Fetch failures are
// logged and leave the field unset without aborting the pass.
type fileUpdater struct{}

func (u *fileUpdater) Name() string { return "file" }

func (u *fileUpdater) Kinds() []dom.ElementKind {
	return []dom.ElementKind{dom.KindFile}
}

func (u *fileUpdater) Apply(ctx context.Context, el *dom.Element, req Request) error {
	file, err := u.resolveFile(ctx, req)
	if err != nil {
		req.logger().WithFields(logrus.Fields{
			"field": req.Field.ID,
			"url":   req.Value,
		}).WithError(err).Warn("file resource fetch failed")
		return fmt.Errorf("%w: field %q", ErrFetchFailed, req.Field.ID)
	}
	if file == nil {
		return nil
	}

	el.SetAttr("data-file-name", file.Name)
	el.SetAttr("data-file-size", strconv.Itoa(len(file.Data)))
	if file.ContentType != "" {
		el.SetAttr("data-file-type", file.ContentType)
	}

	el.DispatchAll(events.Sequence(req.Field.ID, file.Name, req.Events))
	return nil
}

func (u *fileUpdater) resolveFile(ctx context.Context, req Request) (*File, error) {
	if req.HasValue && strings.TrimSpace(req.Value) != "" {
		if req.Fetcher == nil {
			return nil, fmt.Errorf("update: no fetcher configured")
		}
		file, err := req.Fetcher.Fetch(ctx, req.Value)
		if err != nil {
			return nil, err
		}
		return &file, nil
	}
	if req.TestMode {
		sample := SampleDocument
		return &sample, nil
	}
	return nil, nil
}
