package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// blockingResource fails Open after ctx is canceled.
type blockingResource struct {
	name string
}

func (r blockingResource) Name() string { return r.name }

func (r blockingResource) Open(ctx context.Context) (Stream, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRunner_RunsAllResources(t *testing.T) {
	midi := numbered(t, 2500, ".mid", func(i int) []byte { return []byte("MThd") })
	h5 := numbered(t, 10, ".h5", func(i int) []byte {
		if i == 4 {
			return []byte{0xff}
		}
		return []byte(fmt.Sprintf("song %d", i))
	})
	scores := writeJSON(t, "match_scores.json", `{"TRA": {"m1": 0.9, "m2": 0.2}}`)
	paths := writeJSON(t, "md5_to_paths.json", `{"m1": ["a.mid", "b.mid", "c.mid"]}`)

	sink := newMemSink()
	reports := &memReports{}
	emitter := &mockEmitter{}
	runner := NewRunner(RunnerConfig{Concurrency: 2}, sink, reports, nil, emitter)

	report, err := runner.Run(context.Background(),
		NewMidiFilesResource(openBytes(midi, ".mid"), 1000),
		NewH5ExtractResource(openBytes(h5, ".h5"), &songOpener{}, 20),
		NewMatchScoresResource(scores, 1000),
		NewMD5PathsResource(paths, 2),
	)
	require.NoError(t, err)

	require.Equal(t, []int{1000, 1000, 500}, sink.sizes(ResourceMidiFiles))
	require.Equal(t, []int{9}, sink.sizes(ResourceH5Extract))
	require.Equal(t, []int{2}, sink.sizes(ResourceMatchScores))
	require.Equal(t, []int{2, 1}, sink.sizes(ResourceMD5Paths))

	require.Len(t, report.Resources, 4)
	require.Equal(t, ResourceMidiFiles, report.Resources[0].Name)
	require.EqualValues(t, 2500, report.Resources[0].Records)
	require.EqualValues(t, 1, report.Resources[1].Failed)
	require.EqualValues(t, 2500+9+2+3, report.Records())
	require.Empty(t, report.Failed())
	require.False(t, report.FinishedAt.Before(report.StartedAt))

	require.Len(t, reports.saved, 1)
	require.Len(t, emitter.Events(), 8, "each resource goes Pending->Running->Done")
}

func TestRunner_MalformedAssociationIsFatal(t *testing.T) {
	bad := writeJSON(t, "match_scores.json", `{"TRA": 0.9}`)

	sink := newMemSink()
	reports := &memReports{}
	runner := NewRunner(RunnerConfig{}, sink, reports, nil, nil)

	report, err := runner.Run(context.Background(),
		NewMatchScoresResource(bad, 1000),
		blockingResource{name: "waits_for_cancel"},
	)
	require.ErrorIs(t, err, domain.ErrMalformedAssociation)
	require.Empty(t, sink.sizes(ResourceMatchScores))

	require.Len(t, report.Failed(), 2)
	require.Contains(t, report.Resources[0].Error, "malformed association")
	require.Contains(t, report.Resources[1].Error, context.Canceled.Error())

	require.Len(t, reports.saved, 1, "report is saved on failure")
}

func TestRunner_SinkErrorIsFatal(t *testing.T) {
	midi := numbered(t, 5, ".mid", func(i int) []byte { return []byte("x") })
	sink := newMemSink()
	sink.failOn = ResourceMidiFiles

	_, err := NewRunner(RunnerConfig{}, sink, nil, nil, nil).Run(context.Background(),
		NewMidiFilesResource(openBytes(midi, ".mid"), 2),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "write batch 1")
}

func TestRunner_DuplicateResource(t *testing.T) {
	path := writeJSON(t, "m.json", `{}`)
	_, err := NewRunner(RunnerConfig{}, newMemSink(), nil, nil, nil).Run(context.Background(),
		NewMatchScoresResource(path, 10),
		NewMatchScoresResource(path, 10),
	)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Run() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRunner_CanceledBeforeStart(t *testing.T) {
	path := writeJSON(t, "m.json", `{"a": {"b": 1}}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := newMemSink()
	report, err := NewRunner(RunnerConfig{}, sink, nil, nil, nil).Run(ctx, NewMatchScoresResource(path, 10))
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, sink.sizes(ResourceMatchScores))
	require.Len(t, report.Failed(), 1)
}
