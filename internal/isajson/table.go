package isajson

import (
	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// EncodeTable renders an annotation table in the compact layout shared
// by both JSON dialects.
func EncodeTable(t *isa.ArcTable) *jtree.Object {
	return codec.EncodeTable(t)
}

// DecodeTable reads a table back, rejecting unknown keys.
func DecodeTable(v jtree.Value) (*isa.ArcTable, error) {
	return codec.DecodeTable(v, opts)
}
