// Package store provides SQLite-backed storage for flattened ISA
// metadata snapshots.
//
// SaveInvestigation decomposes an investigation into five tables:
//   - investigations: root document metadata
//   - studies: per-study metadata in document order
//   - assays: per-assay descriptors in document order
//   - annotation_tables: table names and header lists
//   - cells: one row per stored cell, addressed by (table, column, row)
//
// Nested entity lists, headers and cells are stored as canonical JSON
// TEXT under the compact ISA-JSON field grammar, so exporting the same
// document twice produces byte-identical rows and ReadInvestigation
// reverses the export exactly. Sparse tables stay sparse: a cell that
// was never set gets no row, and read-back restores only the cells that
// were stored.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: snapshot replacement cascades to child rows
package store
