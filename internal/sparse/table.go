package sparse

import (
	"slices"

	"github.com/kappe-c/ARCtrl/internal/grammar"
)

// MatrixKey addresses one cell: a column label and an entity slot index.
// Fixed field labels and dynamic comment keys share the one coordinate
// space.
type MatrixKey struct {
	Label string
	Index int
}

// SparseTable holds an entity metadata sheet as a sparse coordinate map.
// An absent coordinate means no value; a stored empty string is a
// present empty value. ColumnCount counts entity slots; the label column
// at index 0 is reserved and not included, so entity i lives at slot
// i+1.
type SparseTable struct {
	Matrix      map[MatrixKey]string
	Keys        []string
	CommentKeys []string
	ColumnCount int
}

// NewSparseTable returns an empty table over the given fixed labels.
func NewSparseTable(keys ...string) *SparseTable {
	return &SparseTable{Matrix: map[MatrixKey]string{}, Keys: slices.Clone(keys)}
}

// TryGet returns the value stored at (label, index) and whether one is
// present.
func (t *SparseTable) TryGet(label string, index int) (string, bool) {
	v, ok := t.Matrix[MatrixKey{Label: label, Index: index}]
	return v, ok
}

// GetOrDefault returns the value stored at (label, index), or def when
// the coordinate is absent.
func (t *SparseTable) GetOrDefault(def, label string, index int) string {
	if v, ok := t.Matrix[MatrixKey{Label: label, Index: index}]; ok {
		return v
	}
	return def
}

// Set stores a value.
func (t *SparseTable) Set(label string, index int, value string) {
	if t.Matrix == nil {
		t.Matrix = map[MatrixKey]string{}
	}
	t.Matrix[MatrixKey{Label: label, Index: index}] = value
}

// SetComment stores a dynamic comment cell, registering the key the
// first time it appears. Keys accumulate across entities in first-seen
// order.
func (t *SparseTable) SetComment(key string, index int, value string) {
	if !slices.Contains(t.CommentKeys, key) {
		t.CommentKeys = append(t.CommentKeys, key)
	}
	t.Set(key, index, value)
}

// FromRows builds a table from label-first lines: cells[0] names the
// row, the remaining cells fill entity slots from 1. Labels listed in
// keys are fixed fields, labels of the Comment[...] shape register
// comment keys, any other label is dropped. Empty cells stay absent.
func FromRows(rows [][]string, keys []string) *SparseTable {
	t := NewSparseTable(keys...)
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		key := row[0]
		if !slices.Contains(keys, key) {
			c, ok := grammar.MatchCommentColumn(key)
			if !ok {
				continue
			}
			key = c.Key
			if !slices.Contains(t.CommentKeys, key) {
				t.CommentKeys = append(t.CommentKeys, key)
			}
		}
		if n := len(row) - 1; n > t.ColumnCount {
			t.ColumnCount = n
		}
		for i, v := range row[1:] {
			if v == "" {
				continue
			}
			t.Set(key, i+1, v)
		}
	}
	return t
}

// ToRows materializes the table back into label-first lines, fixed keys
// first, then comment keys under their Comment[...] labels. Every line
// carries the label plus ColumnCount value cells, absent coordinates
// rendering as empty strings.
func (t *SparseTable) ToRows() [][]string {
	rows := make([][]string, 0, len(t.Keys)+len(t.CommentKeys))
	for _, k := range t.Keys {
		rows = append(rows, t.row(k, k))
	}
	for _, k := range t.CommentKeys {
		rows = append(rows, t.row(k, "Comment["+k+"]"))
	}
	return rows
}

func (t *SparseTable) row(key, label string) []string {
	row := make([]string, t.ColumnCount+1)
	row[0] = label
	for i := 1; i <= t.ColumnCount; i++ {
		row[i] = t.GetOrDefault("", key, i)
	}
	return row
}
