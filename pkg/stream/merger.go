// Package stream decodes newline-delimited JSON increments and merges each
// partial field batch with the original field set before handing it on, so
// fields never lose metadata that an increment did not re-send.
package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formfill/pkg/model"
)

// ApplyFunc receives each merged batch as soon as its line decodes. There is
// no cross-chunk batching: incremental application is the point.
type ApplyFunc func(ctx context.Context, fields []model.Field) error

// envelope is the wire shape of one stream line.
type envelope struct {
	Data []model.Field `json:"data"`
}

// Option customises a Merger.
type Option func(*Merger)

// WithLogger injects the logger used for malformed-line warnings.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithReadBuffer overrides the chunk read size.
func WithReadBuffer(size int) Option {
	return func(m *Merger) {
		if size > 0 {
			m.readSize = size
		}
	}
}

const defaultReadSize = 4 * 1024

// Merger consumes a byte stream of `{"data":[...]}` lines and applies each
// batch merged against the original fields.
type Merger struct {
	base     map[string]model.Field
	apply    ApplyFunc
	logger   logrus.FieldLogger
	readSize int
}

// NewMerger builds a merger over the original field set. The originals are
// indexed by id once; the stream only needs to re-send what changed.
func NewMerger(fields []model.Field, apply ApplyFunc, options ...Option) *Merger {
	m := &Merger{
		base:     model.Index(fields),
		apply:    apply,
		logger:   logrus.StandardLogger(),
		readSize: defaultReadSize,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Consume reads the stream to EOF, decoding and applying one line at a time.
// Each chunk is fully processed before the next read; a missing trailing
// newline on the final chunk is tolerated. Malformed lines are logged and
// discarded without stopping the stream. Context cancellation is honored
// between chunks.
func (m *Merger) Consume(ctx context.Context, r io.Reader) error {
	if r == nil {
		return fmt.Errorf("stream: reader is required")
	}

	var pending bytes.Buffer
	chunk := make([]byte, m.readSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := r.Read(chunk)
		if n > 0 {
			pending.Write(chunk[:n])
			if err := m.drainLines(ctx, &pending); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			// Decoder flush: the final line may lack its newline.
			return m.handleLine(ctx, pending.Bytes())
		}
		if readErr != nil {
			return fmt.Errorf("stream: read chunk: %w", readErr)
		}
	}
}

func (m *Merger) drainLines(ctx context.Context, pending *bytes.Buffer) error {
	for {
		raw := pending.Bytes()
		idx := bytes.IndexByte(raw, '\n')
		if idx < 0 {
			return nil
		}
		line := make([]byte, idx)
		copy(line, raw[:idx])
		pending.Next(idx + 1)

		if err := m.handleLine(ctx, line); err != nil {
			return err
		}
	}
}

func (m *Merger) handleLine(ctx context.Context, line []byte) error {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		m.logger.WithError(err).Warn("discarding malformed stream line")
		return nil
	}
	if len(env.Data) == 0 {
		return nil
	}

	merged := make([]model.Field, 0, len(env.Data))
	for _, partial := range env.Data {
		if base, ok := m.base[partial.ID]; ok {
			merged = append(merged, model.Merge(base, partial))
			continue
		}
		// A field the originals never mentioned still gets applied as-is.
		merged = append(merged, partial)
	}

	if err := m.apply(ctx, merged); err != nil {
		return fmt.Errorf("stream: apply batch: %w", err)
	}
	return nil
}
