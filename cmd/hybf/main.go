// Command hybf is a thin CLI wrapper around the codec: it is not part of
// the core (see spec §1, §6.4) and exists only to make the format usable
// from a shell without writing Go.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/coldbrewdata/hybf"
	"github.com/coldbrewdata/hybf/format"
	"github.com/coldbrewdata/hybf/table"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage:\n  %s encode <in.csv> <out.hybf>\n  %s decode <in.hybf> <out.csv>\n", os.Args[0], os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "encode":
		err = runEncode(log, args[1], args[2])
	case "decode":
		err = runDecode(log, args[1], args[2])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("hybf command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func runEncode(log *slog.Logger, inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("csv has no header row")
	}

	t, warning, err := tableFromCSV(records[0], records[1:])
	if err != nil {
		return err
	}
	if warning != "" {
		log.Warn(warning)
	}

	data, err := hybf.Encode(t)
	if err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}

	log.Info("encoded table", "columns", t.NumColumns(), "rows", t.NumRows(), "bytes", len(data), "out", outPath)

	return nil
}

func runDecode(log *slog.Logger, inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	t, err := hybf.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding table: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	header := make([]string, t.NumColumns())
	for i := 0; i < t.NumColumns(); i++ {
		header[i] = t.ColumnAt(i).Name()
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for row := 0; row < t.NumRows(); row++ {
		record := make([]string, t.NumColumns())
		for i := 0; i < t.NumColumns(); i++ {
			v, ok := t.ColumnAt(i).Value(row)
			if !ok {
				continue
			}
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Info("decoded table", "columns", t.NumColumns(), "rows", t.NumRows(), "out", outPath)

	return nil
}

// tableFromCSV infers a logical type per column (int64, float64, bool, else
// string; an empty cell or the literal "NaN" is null) and builds a
// MaterializedTable. It returns a non-empty warning string at most once,
// when a column mixes an empty cell and a literal "NaN" — two distinct null
// representations coalesced into the codec's single canonical null,
// matching spec §7/§9.
func tableFromCSV(header []string, rows [][]string) (*table.MaterializedTable, string, error) {
	numCols := len(header)
	numRows := len(rows)

	sawEmptyNull := make([]bool, numCols)
	sawNaNNull := make([]bool, numCols)

	logicalTypes := make([]format.LogicalType, numCols)
	for c := 0; c < numCols; c++ {
		logicalTypes[c] = inferColumnType(rows, c)
	}

	columns := make([]*table.MaterializedColumn, numCols)
	for c := 0; c < numCols; c++ {
		col, err := buildColumnFromCSV(header[c], logicalTypes[c], rows, c, sawEmptyNull, sawNaNNull)
		if err != nil {
			return nil, "", err
		}
		columns[c] = col
	}

	warning := ""
	for c := 0; c < numCols; c++ {
		if sawEmptyNull[c] && sawNaNNull[c] {
			warning = fmt.Sprintf("column %q mixes empty cells and literal NaN as null; both coalesced to the canonical null", header[c])
			break
		}
	}

	t, err := table.NewTable(columns)
	if err != nil {
		return nil, "", err
	}

	_ = numRows

	return t, warning, nil
}

func inferColumnType(rows [][]string, col int) format.LogicalType {
	sawInt, sawFloat, sawBool, sawString, sawAny := true, true, true, false, false
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		cell := row[col]
		if cell == "" || cell == "NaN" {
			continue
		}
		sawAny = true
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			sawInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			sawFloat = false
		}
		if cell != "true" && cell != "false" {
			sawBool = false
		}
	}
	if !sawAny {
		return format.LogicalString
	}
	switch {
	case sawInt:
		return format.LogicalInt64
	case sawFloat:
		return format.LogicalFloat64
	case sawBool:
		return format.LogicalBoolean
	default:
		sawString = true
	}
	if sawString {
		return format.LogicalString
	}

	return format.LogicalString
}

func buildColumnFromCSV(name string, lt format.LogicalType, rows [][]string, col int, sawEmptyNull, sawNaNNull []bool) (*table.MaterializedColumn, error) {
	n := len(rows)
	nullMask := make([]bool, n)
	anyNull := false

	cellAt := func(row int) string {
		if col >= len(rows[row]) {
			return ""
		}
		return rows[row][col]
	}
	markNull := func(row int, cell string) {
		nullMask[row] = true
		anyNull = true
		if cell == "" {
			sawEmptyNull[col] = true
		} else {
			sawNaNNull[col] = true
		}
	}

	switch lt {
	case format.LogicalInt64:
		values := make([]int64, n)
		for row := 0; row < n; row++ {
			cell := cellAt(row)
			if cell == "" || cell == "NaN" {
				markNull(row, cell)
				continue
			}
			v, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", row, name, err)
			}
			values[row] = v
		}
		return table.NewColumn(name, lt, values, nullMaskOrNil(nullMask, anyNull))
	case format.LogicalFloat64:
		values := make([]float64, n)
		for row := 0; row < n; row++ {
			cell := cellAt(row)
			if cell == "" || cell == "NaN" {
				markNull(row, cell)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", row, name, err)
			}
			values[row] = v
		}
		return table.NewColumn(name, lt, values, nullMaskOrNil(nullMask, anyNull))
	case format.LogicalBoolean:
		values := make([]bool, n)
		for row := 0; row < n; row++ {
			cell := cellAt(row)
			if cell == "" || cell == "NaN" {
				markNull(row, cell)
				continue
			}
			values[row] = cell == "true"
		}
		return table.NewColumn(name, lt, values, nullMaskOrNil(nullMask, anyNull))
	default:
		values := make([]string, n)
		for row := 0; row < n; row++ {
			cell := cellAt(row)
			if cell == "" || cell == "NaN" {
				markNull(row, cell)
				continue
			}
			values[row] = cell
		}
		return table.NewColumn(name, format.LogicalString, values, nullMaskOrNil(nullMask, anyNull))
	}
}

func nullMaskOrNil(mask []bool, any bool) []bool {
	if !any {
		return nil
	}
	return mask
}
