package container

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

func msdContainer() *memGroup {
	root := newMemGroup()
	root.group("metadata").
		dataset("songs", songs([]any{FixedString("Never Gonna"), int32(1987), 213.0})).
		dataset("similar_artists", &PlainDataset{Name: "similar_artists", Data: NDArray{Shape: []int{2}, Data: []any{FixedString("ARA"), FixedString("ARB")}}})
	analysis := root.group("analysis")
	analysis.dataset("segments_timbre", &PlainDataset{Name: "segments_timbre", Data: NDArray{Shape: []int{1, 2}, Data: []any{float32(1), float32(2)}}})
	analysis.group("nested").dataset("values", &PlainDataset{Name: "values", Data: NDArray{Shape: []int{0}, Data: []any{}}})
	root.other("named_type")
	return root
}

func TestWalk_MirrorsHierarchy(t *testing.T) {
	root := msdContainer()

	tree, err := Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := Tree{
		"metadata": Tree{
			"songs":           map[string]any{"title": "Never Gonna", "year": int64(1987), "duration": 213.0},
			"similar_artists": []any{"ARA", "ARB"},
		},
		"analysis": Tree{
			"segments_timbre": []any{[]any{1.0, 2.0}},
			"nested":          Tree{"values": []any{}},
		},
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("Walk() = %#v\nwant %#v", tree, want)
	}

	if _, ok := tree["musicbrainz"]; ok {
		t.Errorf("absent group must not appear as a key")
	}
	if *root.opened != *root.closed {
		t.Errorf("opened %d subgroups, closed %d", *root.opened, *root.closed)
	}
}

func TestWalk_Deterministic(t *testing.T) {
	root := msdContainer()
	first, err := Walk(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Walk(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("walks differ:\n%#v\n%#v", first, second)
	}
}

func TestWalk_LeafErrorFailsContainer(t *testing.T) {
	root := newMemGroup()
	root.group("musicbrainz").dataset("songs", songs([]any{FixedString{0xff}, int32(0), 0.0}))

	_, err := Walk(context.Background(), root)
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode", err)
	}

	boom := errors.New("boom")
	root = newMemGroup()
	meta := root.group("metadata")
	meta.dataset("songs", songs())
	meta.readErr["songs"] = boom
	_, err = Walk(context.Background(), root)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
	if *root.opened != *root.closed {
		t.Errorf("subgroup left open after failure: opened %d, closed %d", *root.opened, *root.closed)
	}
}

func TestLoad_TaggedVariants(t *testing.T) {
	root, err := Load(context.Background(), msdContainer())
	if err != nil {
		t.Fatal(err)
	}
	kinds := map[string]Kind{}
	for _, c := range root.Children {
		kinds[c.NodeName()] = c.Kind()
	}
	if kinds["metadata"] != KindGroup || kinds["analysis"] != KindGroup {
		t.Errorf("kinds = %v", kinds)
	}
	// children are ordered by name
	meta := root.Children[1].(*GroupNode)
	if meta.Name != "metadata" {
		t.Fatalf("Children[1] = %q, want metadata", meta.Name)
	}
	if meta.Children[0].Kind() != KindPlainDataset {
		t.Errorf("similar_artists kind = %v, want plain-dataset", meta.Children[0].Kind())
	}
	if meta.Children[1].Kind() != KindStructuredDataset {
		t.Errorf("songs kind = %v, want structured-dataset", meta.Children[1].Kind())
	}
}

func TestLoad_OrdersMembersByName(t *testing.T) {
	root := newMemGroup()
	root.dataset("zeta", &PlainDataset{Name: "zeta", Data: NDArray{Shape: []int{0}, Data: []any{}}})
	root.group("alpha")
	root.dataset("mid", &PlainDataset{Name: "mid", Data: NDArray{Shape: []int{0}, Data: []any{}}})

	node, err := Load(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, c := range node.Children {
		got = append(got, c.NodeName())
	}
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
}

func TestWalk_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Walk(ctx, msdContainer()); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
