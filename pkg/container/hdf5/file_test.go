package hdf5

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	gh5 "gonum.org/v1/hdf5"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/pkg/container"
)

type songRow struct {
	Year     int32   `hdf5:"year"`
	Duration float64 `hdf5:"duration"`
}

// writeFixture creates /metadata/songs (compound) and /analysis/bars_start (float64).
func writeFixture(t *testing.T, path string, rows []songRow) {
	t.Helper()

	f, err := gh5.CreateFile(path, gh5.F_ACC_TRUNC)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	meta, err := f.CreateGroup("metadata")
	if err != nil {
		t.Fatal(err)
	}
	defer meta.Close()

	space, err := gh5.CreateSimpleDataspace([]uint{uint(len(rows))}, nil)
	if err != nil {
		t.Fatal(err)
	}
	dtype, err := gh5.NewDatatypeFromValue(rows[0])
	if err != nil {
		t.Fatal(err)
	}
	ds, err := meta.CreateDataset("songs", dtype, space)
	if err != nil {
		t.Fatal(err)
	}
	if err := ds.Write(&rows); err != nil {
		t.Fatal(err)
	}
	ds.Close()

	analysis, err := f.CreateGroup("analysis")
	if err != nil {
		t.Fatal(err)
	}
	defer analysis.Close()

	bars := []float64{0.5, 1.5, 2.5}
	bspace, err := gh5.CreateSimpleDataspace([]uint{uint(len(bars))}, nil)
	if err != nil {
		t.Fatal(err)
	}
	bds, err := analysis.CreateDataset("bars_start", gh5.T_NATIVE_DOUBLE, bspace)
	if err != nil {
		t.Fatal(err)
	}
	if err := bds.Write(&bars); err != nil {
		t.Fatal(err)
	}
	bds.Close()
}

func TestOpen_WalksCompoundAndPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TRAAAGR128F425B14B.h5")
	writeFixture(t, path, []songRow{{Year: 1999, Duration: 120.5}})

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	tree, err := container.Walk(context.Background(), f)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := container.Tree{
		"metadata": container.Tree{
			"songs": map[string]any{"year": int64(1999), "duration": 120.5},
		},
		"analysis": container.Tree{
			"bars_start": []any{0.5, 1.5, 2.5},
		},
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("Walk() = %#v\nwant %#v", tree, want)
	}
}

func TestOpenBytes_RemovesTempFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src.h5")
	writeFixture(t, src, []songRow{{Year: 1, Duration: 1}, {Year: 2, Duration: 2}})
	content, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}

	spill := t.TempDir()
	f, err := OpenBytes(content, spill)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	tree, err := container.Walk(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	songs, ok := tree["metadata"].(container.Tree)["songs"].([]any)
	if !ok || len(songs) != 2 {
		t.Errorf("songs = %#v, want two records", tree["metadata"])
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	left, _ := os.ReadDir(spill)
	if len(left) != 0 {
		t.Errorf("temp dir still holds %d files", len(left))
	}
}

func TestOpenBytes_GarbageFails(t *testing.T) {
	spill := t.TempDir()
	if _, err := OpenBytes([]byte("not an hdf5 file"), spill); err == nil {
		t.Fatal("expected error for garbage content")
	}
	left, _ := os.ReadDir(spill)
	if len(left) != 0 {
		t.Errorf("temp file not removed after failed open")
	}
}

func TestOpen_VariableLengthStringUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vlen.h5")
	f, err := gh5.CreateFile(path, gh5.F_ACC_TRUNC)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	meta, err := f.CreateGroup("metadata")
	if err != nil {
		t.Fatal(err)
	}
	space, err := gh5.CreateSimpleDataspace([]uint{2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := meta.CreateDataset("artist_terms", gh5.T_GO_STRING, space)
	if err != nil {
		t.Fatal(err)
	}
	ds.Close()
	space.Close()
	meta.Close()
	f.Close()

	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.Close()

	_, err = container.Walk(context.Background(), h)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("Walk() error = %v, want ErrUnsupportedType", err)
	}
}
