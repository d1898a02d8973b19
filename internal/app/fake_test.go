package app

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/internal/ports"
	"github.com/bft-labs/lakhbronze/pkg/archive"
	"github.com/bft-labs/lakhbronze/pkg/container"
)

// tarGz builds an archive of regular files named by names, in order.
func tarGz(t *testing.T, files map[string][]byte, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, name := range names {
		content := files[name]
		if err := tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content))}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// numbered builds n entries "lmd/NNNN<suffix>" whose content is their index.
func numbered(t *testing.T, n int, suffix string, content func(i int) []byte) []byte {
	t.Helper()
	files := make(map[string][]byte, n)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("lmd/%04d%s", i, suffix)
		files[names[i]] = content(i)
	}
	return tarGz(t, files, names...)
}

func openBytes(data []byte, suffix string) OpenEntries {
	return func(onSkip func(string, error)) (ports.EntryReader, error) {
		return archive.NewTarGzReader(bytes.NewReader(data), suffix, archive.WithSkipHook(onSkip))
	}
}

// songGroup is a single-dataset container: /metadata/songs with one row.
type songGroup struct {
	title  []byte
	sub    bool
	closes *int
}

func (g *songGroup) Members() ([]container.Member, error) {
	if g.sub {
		return []container.Member{{Name: "songs", Kind: container.MemberDataset}}, nil
	}
	return []container.Member{{Name: "metadata", Kind: container.MemberGroup}}, nil
}

func (g *songGroup) OpenGroup(name string) (container.Group, error) {
	return &songGroup{title: g.title, sub: true, closes: g.closes}, nil
}

func (g *songGroup) ReadDataset(name string) (container.Node, error) {
	return &container.StructuredDataset{
		Name:   name,
		Fields: []string{"title"},
		Rows:   [][]any{{container.FixedString(g.title)}},
	}, nil
}

func (g *songGroup) Close() error {
	*g.closes++
	return nil
}

// songOpener opens entry content as the title of a songGroup. Content
// "garbage" fails to open.
type songOpener struct {
	mu     sync.Mutex
	closes int
}

func (o *songOpener) Open(ctx context.Context, e domain.Entry) (container.Group, error) {
	if string(e.Content) == "garbage" {
		return nil, errors.New("not an HDF5 file")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return &songGroup{title: e.Content, closes: &o.closes}, nil
}

// memSink collects batches per resource.
type memSink struct {
	mu      sync.Mutex
	batches map[string][]domain.Batch
	failOn  string
}

func newMemSink() *memSink {
	return &memSink{batches: map[string][]domain.Batch{}}
}

func (s *memSink) Write(ctx context.Context, resource string, b domain.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resource == s.failOn {
		return errors.New("sink unavailable")
	}
	s.batches[resource] = append(s.batches[resource], b)
	return nil
}

func (s *memSink) sizes(resource string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int
	for _, b := range s.batches[resource] {
		out = append(out, b.Size())
	}
	return out
}

// memReports keeps the last saved report.
type memReports struct {
	saved []domain.Report
}

func (m *memReports) Load(ctx context.Context) (domain.Report, error) {
	if len(m.saved) == 0 {
		return domain.Report{}, nil
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *memReports) Save(ctx context.Context, r domain.Report) error {
	m.saved = append(m.saved, r)
	return nil
}

func drainStream(t *testing.T, s Stream) []domain.Batch {
	t.Helper()
	var out []domain.Batch
	for {
		b, err := s.Next(context.Background())
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		out = append(out, b)
	}
}
