package redact

// ModelType is the policy tag a node is redacted under. Tags are assigned by
// each record type at construction; the engine never inspects Go types.
type ModelType string

// Shape classifies a field for traversal.
type Shape int

const (
	// Scalar fields are cleared but never walked. Lists of strings are scalars.
	Scalar Shape = iota
	// Nested fields hold at most one child node.
	Nested
	// NestedList fields hold an ordered sequence of child nodes.
	NestedList
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Nested:
		return "nested"
	case NestedList:
		return "nested_list"
	default:
		return "unknown"
	}
}

// Field exposes one field of a node to the engine.
//
// Clear is the setter-to-absent: after it runs the field must be omitted from
// the rendered record, not zeroed to a value that reads as data. Node is set
// only for Nested fields and returns nil when the field is absent. Nodes is set
// only for NestedList fields.
type Field struct {
	Name  string
	Shape Shape
	Get   func() any
	Clear func()
	Node  func() Node
	Nodes func() []Node
}

// Node is the capability every redactable record implements.
type Node interface {
	ModelType() ModelType
	// Fields lists the node's fields in a fixed order.
	Fields() []Field
}

// ScalarField builds a Scalar field.
func ScalarField(name string, get func() any, clear func()) Field {
	return Field{Name: name, Shape: Scalar, Get: get, Clear: clear}
}

// NestedField builds a Nested field. get must return an untyped nil when the
// child is absent.
func NestedField(name string, get func() Node, clear func()) Field {
	return Field{
		Name:  name,
		Shape: Nested,
		Get:   func() any { return get() },
		Clear: clear,
		Node:  get,
	}
}

// ListField builds a NestedList field.
func ListField(name string, get func() []Node, clear func()) Field {
	return Field{
		Name:  name,
		Shape: NestedList,
		Get:   func() any { return get() },
		Clear: clear,
		Nodes: get,
	}
}
