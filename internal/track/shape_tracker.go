package track

import (
	"fmt"
	"strings"

	"github.com/born-ml/track/internal/nn"
	"github.com/born-ml/track/internal/tensor"
)

// labelFor renders the count plus depth-indented module kind column
// shared by every policy's String method.
func labelFor(count, depth int, kind string) string {
	return fmt.Sprintf("%d %-20s", count, strings.Repeat("  ", depth)+kind)
}

// ShapeTracker records the input and output tensor-shape trees of one
// module execution.
//
// Shapes are resolved recursively: slices yield the shapes of their
// tensor elements (shapeless entries are dropped), string-keyed maps
// keep only entries with a shape, tensors yield their dimensions as
// []int, and anything else resolves to nil ("no shape").
type ShapeTracker struct {
	Base
	ModuleKind  string
	InputShape  any
	OutputShape any
}

// NewShapeTracker is a Factory for ShapeTracker.
func NewShapeTracker(count, depth int, leaf bool, shared Dict) Tracker {
	return &ShapeTracker{Base: Base{Count: count, Depth: depth, Leaf: leaf, Shared: shared}}
}

// Pre records the module kind and the input shape tree.
func (t *ShapeTracker) Pre(m nn.Module, inputs []any) {
	t.ModuleKind = m.Kind()
	t.InputShape = resolveShape(inputs)
}

// Post records the output shape tree.
func (t *ShapeTracker) Post(m nn.Module, inputs []any, output any) {
	t.OutputShape = resolveShape(output)
}

// resolveShape maps a value to its shape tree, or nil if it has none.
func resolveShape(obj any) any {
	switch v := obj.(type) {
	case []any:
		shapes := make([]any, 0, len(v))
		for _, e := range v {
			if shape := resolveShape(e); shape != nil {
				shapes = append(shapes, shape)
			}
		}
		return shapes
	case map[string]any:
		shapes := make(map[string]any, len(v))
		for k, e := range v {
			if shape := resolveShape(e); shape != nil {
				shapes[k] = shape
			}
		}
		return shapes
	case *tensor.Tensor:
		if v == nil {
			return nil
		}
		return v.Shape().Ints()
	default:
		return nil
	}
}

// String renders "<count> <kind>: <input shapes> -> <output shape>".
func (t *ShapeTracker) String() string {
	return fmt.Sprintf("%s: %s -> %s",
		labelFor(t.Count, t.Depth, t.ModuleKind),
		formatShape(t.InputShape, true),
		formatShape(t.OutputShape, false))
}

// formatShape renders a shape tree. The top-level input slice renders
// as a parenthesized tuple of the positional input shapes.
func formatShape(shape any, tuple bool) string {
	switch v := shape.(type) {
	case nil:
		return "?"
	case []int:
		return tensor.Shape(v).String()
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatShape(e, false)
		}
		if tuple {
			return "(" + strings.Join(parts, " ") + ")"
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
