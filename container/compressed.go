package container

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/coldbrewdata/hybf/encoding"
	"github.com/coldbrewdata/hybf/errs"
	"github.com/coldbrewdata/hybf/section"
	"github.com/coldbrewdata/hybf/selector"
	"github.com/coldbrewdata/hybf/table"
	"github.com/coldbrewdata/hybf/typeinfer"
	"github.com/coldbrewdata/hybf/wire"
)

// ParallelColumnThreshold is the column count above which WriteCompressed
// fans per-column encoding out across goroutines. Below it, the overhead of
// goroutine scheduling is not worth paying.
const ParallelColumnThreshold = 4

// WriteCompressed writes t in the compressed container layout (§4.5),
// selecting an encoding per column via sel (a nil sel uses selector
// defaults). Columns are encoded independently — concurrently once the
// table has more than ParallelColumnThreshold columns — but the final byte
// stream is always assembled in column-directory order.
func WriteCompressed(t table.Table, sel *selector.Selector) ([]byte, error) {
	if sel == nil {
		sel = selector.New()
	}

	numColumns := t.NumColumns()
	if numColumns > 65535 {
		return nil, fmt.Errorf("%w: %d columns exceeds u16 directory", errs.ErrShapeError, numColumns)
	}

	header := section.Header{
		Version:    section.Version,
		FormatType: section.FormatCompressed,
		NumColumns: uint16(numColumns),
	}

	payloads, err := encodeColumns(t, sel)
	if err != nil {
		return nil, err
	}

	w := wire.NewWriter()
	defer w.Release()

	w.PutBytes(header.Bytes())

	for i := 0; i < numColumns; i++ {
		col := t.ColumnAt(i)
		entryBytes, err := section.CompressedEntry{LogicalType: col.LogicalType(), Name: col.Name()}.Bytes()
		if err != nil {
			return nil, err
		}
		w.PutBytes(entryBytes)
	}

	w.PutU32(uint32(t.NumRows()))

	for _, payload := range payloads {
		w.PutBytes(payload)
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out, nil
}

// encodeColumns encodes every column, in parallel once the table is large
// enough, and returns their framed payloads in directory order.
func encodeColumns(t table.Table, sel *selector.Selector) ([][]byte, error) {
	numColumns := t.NumColumns()
	payloads := make([][]byte, numColumns)

	encodeOne := func(i int) error {
		col := t.ColumnAt(i)
		st, _ := typeinfer.Analyze(col)
		tag := sel.Select(col, st)
		framed, err := encoding.EncodeColumn(tag, col, st)
		if err != nil {
			return fmt.Errorf("column %q: %w", col.Name(), err)
		}
		payloads[i] = framed

		return nil
	}

	if numColumns <= ParallelColumnThreshold {
		for i := 0; i < numColumns; i++ {
			if err := encodeOne(i); err != nil {
				return nil, err
			}
		}

		return payloads, nil
	}

	var g errgroup.Group
	for i := 0; i < numColumns; i++ {
		i := i
		g.Go(func() error { return encodeOne(i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return payloads, nil
}

// ReadCompressed reads a compressed-container byte stream and materializes
// a Table.
func ReadCompressed(data []byte) (table.Table, error) {
	hdr, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if hdr.FormatType != section.FormatCompressed {
		return nil, errs.ErrWrongContainer
	}

	r := wire.NewReader(data)
	r.Seek(section.HeaderSize)

	entries := make([]section.CompressedEntry, hdr.NumColumns)
	for i := range entries {
		e, err := section.ParseCompressedEntry(r)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	rowCount32, err := r.U32()
	if err != nil {
		return nil, err
	}
	rowCount := int(rowCount32)

	columns := make([]*table.MaterializedColumn, hdr.NumColumns)
	for i, e := range entries {
		col, err := encoding.DecodeColumn(r, e.Name, e.LogicalType, rowCount)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", e.Name, err)
		}
		columns[i] = col
	}

	return table.NewTable(columns)
}
