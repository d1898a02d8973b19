package container

// MemberKind is the intrinsic object type of a group member.
type MemberKind int

const (
	MemberOther MemberKind = iota
	MemberGroup
	MemberDataset
)

// Member names one child of a group.
type Member struct {
	Name string
	Kind MemberKind
}

// Group is an open group inside a container. The root of a container is
// itself a Group. Implementations are not safe for concurrent use.
type Group interface {
	// Members lists the direct children in stored order.
	Members() ([]Member, error)

	// OpenGroup opens a child group. The caller closes it.
	OpenGroup(name string) (Group, error)

	// ReadDataset reads a child dataset completely and returns either a
	// *PlainDataset or a *StructuredDataset.
	ReadDataset(name string) (Node, error)

	// Close releases the handle.
	Close() error
}
