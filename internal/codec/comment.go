package codec

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// EncodeComment renders a comment as {"name": ..., "value": ...}, each
// key elided when empty.
func EncodeComment(c isa.Comment) *jtree.Object {
	o := jtree.NewObject()
	TryIncludeString(o, "name", c.Name)
	TryIncludeString(o, "value", c.Value)
	return o
}

// DecodeComment reads a comment object. An "@id" key is tolerated in
// both dialects; legacy writers emit one.
func DecodeComment(v jtree.Value, opts Options) (isa.Comment, error) {
	f, err := NewFields("comment", v, opts)
	if err != nil {
		return isa.Comment{}, err
	}
	if _, err := f.OptString("@id"); err != nil {
		return isa.Comment{}, err
	}
	name, err := f.Text("name")
	if err != nil {
		return isa.Comment{}, err
	}
	value, err := f.Text("value")
	if err != nil {
		return isa.Comment{}, err
	}
	if err := f.Finish(); err != nil {
		return isa.Comment{}, err
	}
	return isa.Comment{Name: name, Value: value}, nil
}

// EncodeComments renders a comment list. It returns nil for an empty
// list so TryIncludeArray elides the key.
func EncodeComments(comments []isa.Comment) []jtree.Value {
	if len(comments) == 0 {
		return nil
	}
	values := make([]jtree.Value, 0, len(comments))
	for _, c := range comments {
		values = append(values, EncodeComment(c))
	}
	return values
}

// DecodeComments reads a comment list, nil when values is empty.
func DecodeComments(values []jtree.Value, opts Options) ([]isa.Comment, error) {
	if len(values) == 0 {
		return nil, nil
	}
	comments := make([]isa.Comment, 0, len(values))
	for i, v := range values {
		c, err := DecodeComment(v, opts)
		if err != nil {
			return nil, fmt.Errorf("comments[%d]: %w", i, err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}
