// Package sparse is the string-matrix layer behind the tabular (ISA-Tab)
// form. Entity metadata sheets live in a SparseTable, a coordinate map
// keyed by column label and entity slot, and materialize as label-first
// rows. Annotation tables expand their typed columns into the raw string
// columns spreadsheet tools exchange, term columns growing Unit and
// reference subcolumns, and collapse back again through the header
// grammar.
package sparse
