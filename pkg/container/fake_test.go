package container

import "fmt"

// memGroup is an in-memory Group used by the tests in this package.
type memGroup struct {
	order    []Member
	groups   map[string]*memGroup
	datasets map[string]Node
	readErr  map[string]error
	opened   *int
	closed   *int
}

func newMemGroup() *memGroup {
	var opened, closed int
	return &memGroup{
		groups:   map[string]*memGroup{},
		datasets: map[string]Node{},
		readErr:  map[string]error{},
		opened:   &opened,
		closed:   &closed,
	}
}

func (g *memGroup) group(name string) *memGroup {
	sub := &memGroup{
		groups:   map[string]*memGroup{},
		datasets: map[string]Node{},
		readErr:  map[string]error{},
		opened:   g.opened,
		closed:   g.closed,
	}
	g.groups[name] = sub
	g.order = append(g.order, Member{Name: name, Kind: MemberGroup})
	return sub
}

func (g *memGroup) dataset(name string, n Node) *memGroup {
	g.datasets[name] = n
	g.order = append(g.order, Member{Name: name, Kind: MemberDataset})
	return g
}

func (g *memGroup) other(name string) *memGroup {
	g.order = append(g.order, Member{Name: name, Kind: MemberOther})
	return g
}

func (g *memGroup) Members() ([]Member, error) {
	return append([]Member(nil), g.order...), nil
}

func (g *memGroup) OpenGroup(name string) (Group, error) {
	sub, ok := g.groups[name]
	if !ok {
		return nil, fmt.Errorf("no group %q", name)
	}
	*g.opened++
	return sub, nil
}

func (g *memGroup) ReadDataset(name string) (Node, error) {
	if err := g.readErr[name]; err != nil {
		return nil, err
	}
	n, ok := g.datasets[name]
	if !ok {
		return nil, fmt.Errorf("no dataset %q", name)
	}
	return n, nil
}

func (g *memGroup) Close() error {
	*g.closed++
	return nil
}

func songs(rows ...[]any) *StructuredDataset {
	return &StructuredDataset{
		Name:   "songs",
		Fields: []string{"title", "year", "duration"},
		Rows:   rows,
	}
}
