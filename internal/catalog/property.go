package catalog

import (
	"fmt"

	"github.com/slicermeta/slicermeta/internal/extract"
)

// Kind distinguishes constants from fields.
type Kind int

const (
	KindConstant Kind = iota
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindField:
		return "field"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Property is one entry of the catalog.
type Property struct {
	Kind Kind

	// Constant
	Name  string
	Value string

	// Field
	SourceKey string
	TargetKey string
	Transform extract.Transformer // nil passes the value through
}

// Constant returns a property emitted on every file.
func Constant(name, value string) Property {
	return Property{Kind: KindConstant, Name: name, Value: value}
}

// Field returns a property extracted from lines starting with sourceKey.
func Field(sourceKey, targetKey string, transform extract.Transformer) Property {
	return Property{Kind: KindField, SourceKey: sourceKey, TargetKey: targetKey, Transform: transform}
}

// OutputKey returns the key the property is emitted under.
func (p Property) OutputKey() string {
	if p.Kind == KindConstant {
		return p.Name
	}
	return p.TargetKey
}

// Extract applies the field's transformer to the text after the source key.
func (p Property) Extract(raw string) (extract.Value, error) {
	if p.Transform == nil {
		return extract.TextTransformer.Transform(raw)
	}
	return p.Transform.Transform(raw)
}

// TransformName describes the transformer for listings.
func (p Property) TransformName() string {
	if p.Transform == nil {
		return "passthrough"
	}
	if named, ok := p.Transform.(fmt.Stringer); ok {
		return named.String()
	}
	return "custom"
}
