package container

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// Tree is a flattened container: group name to nested Tree or dataset value.
type Tree = map[string]domain.Value

// Walk loads every member below g and flattens the result.
func Walk(ctx context.Context, g Group) (Tree, error) {
	root, err := Load(ctx, g)
	if err != nil {
		return nil, err
	}
	v, err := Flatten(root)
	if err != nil {
		return nil, err
	}
	return v.(Tree), nil
}

// Load reads the hierarchy below g into memory. Members that are neither
// groups nor datasets (named types, dangling links) are skipped. Every
// subgroup opened here is closed before Load returns; g itself is not.
func Load(ctx context.Context, g Group) (*GroupNode, error) {
	return load(ctx, g, "")
}

func load(ctx context.Context, g Group, prefix string) (*GroupNode, error) {
	members, err := g.Members()
	if err != nil {
		return nil, fmt.Errorf("list %s/: %w", prefix, err)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

	node := &GroupNode{Name: baseName(prefix), Children: make([]Node, 0, len(members))}
	for _, m := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := prefix + "/" + m.Name

		switch m.Kind {
		case MemberGroup:
			child, err := loadGroup(ctx, g, m.Name, p)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case MemberDataset:
			ds, err := g.ReadDataset(m.Name)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", p, err)
			}
			node.Children = append(node.Children, ds)
		}
	}
	return node, nil
}

func loadGroup(ctx context.Context, parent Group, name, p string) (n *GroupNode, err error) {
	sub, err := parent.OpenGroup(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	defer func() {
		if cerr := sub.Close(); cerr != nil {
			err = multierror.Append(err, fmt.Errorf("close %s: %w", p, cerr)).ErrorOrNil()
			n = nil
		}
	}()
	return load(ctx, sub, p)
}

// Flatten converts a materialized node into portable values.
func Flatten(n Node) (domain.Value, error) {
	switch n := n.(type) {
	case *GroupNode:
		out := make(Tree, len(n.Children))
		for _, c := range n.Children {
			v, err := Flatten(c)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.NodeName(), err)
			}
			out[c.NodeName()] = v
		}
		return out, nil
	case *StructuredDataset:
		return FlattenStructured(n)
	case *PlainDataset:
		return FlattenPlain(n)
	default:
		return nil, fmt.Errorf("%w: node %T", domain.ErrUnsupportedType, n)
	}
}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}
