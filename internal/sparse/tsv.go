package sparse

import (
	"encoding/csv"
	"io"
)

// WriteTSV writes raw rows tab-separated. Rows may differ in length.
func WriteTSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTSV reads tab-separated rows. Rows may differ in length and bare
// quotes inside fields pass through.
func ReadTSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}
