package archive

import (
	"archive/tar"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/pkg/log"
)

// StdinLocation reads the archive from standard input.
const StdinLocation = "-"

// Option configures a TarGzReader.
type Option func(*TarGzReader)

// WithLogger sets the logger used for skipped entries.
func WithLogger(l log.Logger) Option {
	return func(r *TarGzReader) {
		r.logger = log.OrNoop(l)
	}
}

// WithMaxEntrySize skips members larger than n bytes. Zero means no limit.
func WithMaxEntrySize(n int64) Option {
	return func(r *TarGzReader) {
		r.maxEntrySize = n
	}
}

// WithSkipHook registers fn to be called for every skipped member.
func WithSkipHook(fn func(path string, reason error)) Option {
	return func(r *TarGzReader) {
		r.onSkip = fn
	}
}

// TarGzReader implements Reader over a gzip-compressed tar stream.
type TarGzReader struct {
	src          io.Closer
	gz           *gzip.Reader
	tr           *tar.Reader
	suffix       string
	maxEntrySize int64
	logger       log.Logger
	onSkip       func(string, error)
	stats        Stats
	done         bool
	closed       bool
}

var _ Reader = (*TarGzReader)(nil)

// Open opens the archive at location, or standard input for "-".
func Open(location, suffix string, opts ...Option) (*TarGzReader, error) {
	if location == StdinLocation {
		return NewTarGzReader(os.Stdin, suffix, opts...)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	r, err := NewTarGzReader(bufio.NewReaderSize(f, 1<<20), suffix, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.src = f
	return r, nil
}

// NewTarGzReader reads a gzip-compressed tar stream from src, yielding members
// whose names end in suffix. An empty suffix matches every regular file.
// The caller keeps ownership of src.
func NewTarGzReader(src io.Reader, suffix string, opts ...Option) (*TarGzReader, error) {
	gz, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	r := &TarGzReader{
		gz:     gz,
		tr:     tar.NewReader(gz),
		suffix: suffix,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Next returns the next matching entry.
func (r *TarGzReader) Next(ctx context.Context) (domain.Entry, error) {
	for {
		if r.closed {
			return domain.Entry{}, domain.ErrClosed
		}
		if r.done {
			return domain.Entry{}, io.EOF
		}
		select {
		case <-ctx.Done():
			return domain.Entry{}, ctx.Err()
		default:
		}

		hdr, err := r.tr.Next()
		if err != nil {
			r.done = true
			if errors.Is(err, io.EOF) {
				return domain.Entry{}, io.EOF
			}
			return domain.Entry{}, fmt.Errorf("read archive: %w", err)
		}
		r.stats.Headers++

		if !isFile(hdr.Typeflag) || !strings.HasSuffix(hdr.Name, r.suffix) {
			continue
		}

		content, err := r.extract(hdr)
		if err != nil {
			r.skip(hdr.Name, err)
			continue
		}

		r.stats.Yielded++
		return domain.NewEntry(hdr.Name, content), nil
	}
}

// isFile reports whether a member type carries file content.
func isFile(typeflag byte) bool {
	return typeflag == tar.TypeReg || typeflag == tar.TypeCont
}

// extract reads the current member. Failures wrap ErrEntryUnavailable.
func (r *TarGzReader) extract(hdr *tar.Header) ([]byte, error) {
	if hdr.Size <= 0 {
		return nil, fmt.Errorf("%w: empty", domain.ErrEntryUnavailable)
	}
	if r.maxEntrySize > 0 && hdr.Size > r.maxEntrySize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit %d", domain.ErrEntryUnavailable, hdr.Size, r.maxEntrySize)
	}
	// The header size is untrusted; the buffer grows with the bytes actually present.
	buf, err := io.ReadAll(io.LimitReader(r.tr, hdr.Size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEntryUnavailable, err)
	}
	if int64(len(buf)) != hdr.Size {
		return nil, fmt.Errorf("%w: %v", domain.ErrEntryUnavailable, io.ErrUnexpectedEOF)
	}
	return buf, nil
}

func (r *TarGzReader) skip(name string, reason error) {
	r.stats.Skipped++
	r.logger.Debug("skipping archive entry", log.String("path", name), log.Err(reason))
	if r.onSkip != nil {
		r.onSkip(name, reason)
	}
}

// Stats returns counters for the entries seen so far.
func (r *TarGzReader) Stats() Stats {
	return r.stats
}

// Close releases the gzip stream and, for archives opened by path, the file.
func (r *TarGzReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var result error
	if err := r.gz.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if r.src != nil {
		if err := r.src.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}
