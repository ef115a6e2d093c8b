package codec

import (
	"fmt"
	"sort"

	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// EncodeTable renders an annotation table as {"name", "header",
// "values"}. Cells are written as [[column,row], cell] pairs sorted by
// column then row, so output is deterministic regardless of insertion
// order. Empty header and cell sets are elided. Both JSON dialects share
// this layout.
func EncodeTable(t *isa.ArcTable) *jtree.Object {
	o := jtree.NewObject()
	o.Set("name", jtree.String(t.Name))

	headers := make([]jtree.Value, 0, len(t.Headers))
	for _, h := range t.Headers {
		headers = append(headers, EncodeHeader(h))
	}
	TryIncludeArray(o, "header", headers)

	keys := make([]isa.CellKey, 0, len(t.Values))
	for k := range t.Values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Column != keys[j].Column {
			return keys[i].Column < keys[j].Column
		}
		return keys[i].Row < keys[j].Row
	})
	pairs := make([]jtree.Value, 0, len(keys))
	for _, k := range keys {
		coord := jtree.Array{jtree.Int(k.Column), jtree.Int(k.Row)}
		pairs = append(pairs, jtree.Array{coord, EncodeCell(t.Values[k])})
	}
	TryIncludeArray(o, "values", pairs)
	return o
}

// DecodeTable reads a table back. The name is required; header and
// values default to empty. Cell coordinates are checked against the
// header range and the column shape.
func DecodeTable(v jtree.Value, opts Options) (*isa.ArcTable, error) {
	f, err := NewFields("table", v, opts)
	if err != nil {
		return nil, err
	}
	name, err := f.String("name")
	if err != nil {
		return nil, err
	}
	t := isa.NewArcTable(name)

	rawHeaders, err := f.Array("header")
	if err != nil {
		return nil, err
	}
	t.Headers, err = DecodeEach("header", rawHeaders, func(v jtree.Value) (isa.CompositeHeader, error) {
		return DecodeHeader(v, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", name, err)
	}

	rawValues, err := f.Array("values")
	if err != nil {
		return nil, err
	}
	for i, pair := range rawValues {
		col, row, cell, err := decodeCellEntry(pair, opts)
		if err != nil {
			return nil, fmt.Errorf("table %q: values[%d]: %w", name, i, err)
		}
		if err := t.SetCellAt(col, row, cell); err != nil {
			return nil, fmt.Errorf("table %q: values[%d]: %w", name, i, err)
		}
	}
	if err := f.Finish(); err != nil {
		return nil, err
	}
	return t, nil
}

// decodeCellEntry unpacks one [[column,row], cell] pair.
func decodeCellEntry(v jtree.Value, opts Options) (int, int, isa.CompositeCell, error) {
	pair, ok := jtree.Arr(v)
	if !ok {
		return 0, 0, nil, NewTypeMismatchError("cell entry", "", "array", KindName(v))
	}
	if len(pair) != 2 {
		return 0, 0, nil, NewArityMismatchError("cell entry", 2, len(pair))
	}
	coord, ok := jtree.Arr(pair[0])
	if !ok {
		return 0, 0, nil, NewTypeMismatchError("cell entry", "coordinate", "array", KindName(pair[0]))
	}
	if len(coord) != 2 {
		return 0, 0, nil, NewArityMismatchError("coordinate", 2, len(coord))
	}
	col, ok := coord[0].(jtree.Int)
	if !ok {
		return 0, 0, nil, NewTypeMismatchError("cell entry", "column", "int", KindName(coord[0]))
	}
	row, ok := coord[1].(jtree.Int)
	if !ok {
		return 0, 0, nil, NewTypeMismatchError("cell entry", "row", "int", KindName(coord[1]))
	}
	cell, err := DecodeCell(pair[1], opts)
	if err != nil {
		return 0, 0, nil, err
	}
	return int(col), int(row), cell, nil
}
