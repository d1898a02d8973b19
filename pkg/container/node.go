package container

// Kind identifies which variant a Node is.
type Kind int

const (
	KindGroup Kind = iota
	KindPlainDataset
	KindStructuredDataset
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindPlainDataset:
		return "plain-dataset"
	case KindStructuredDataset:
		return "structured-dataset"
	default:
		return "unknown"
	}
}

// Node is one materialized member of a container. The set of variants is
// closed: *GroupNode, *PlainDataset and *StructuredDataset.
type Node interface {
	NodeName() string
	Kind() Kind
	node()
}

// GroupNode holds the children of a group in stored order.
type GroupNode struct {
	Name     string
	Children []Node
}

// PlainDataset is a homogeneous dataset. Data is usually an NDArray.
type PlainDataset struct {
	Name string
	Data any
}

// StructuredDataset is a record array: every row carries one raw value per
// entry of Fields, in the same order.
type StructuredDataset struct {
	Name   string
	Fields []string
	Rows   [][]any
}

func (n *GroupNode) NodeName() string         { return n.Name }
func (n *PlainDataset) NodeName() string      { return n.Name }
func (n *StructuredDataset) NodeName() string { return n.Name }

func (*GroupNode) Kind() Kind         { return KindGroup }
func (*PlainDataset) Kind() Kind      { return KindPlainDataset }
func (*StructuredDataset) Kind() Kind { return KindStructuredDataset }

func (*GroupNode) node()         {}
func (*PlainDataset) node()      {}
func (*StructuredDataset) node() {}
