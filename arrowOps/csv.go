package arrowops

import (
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/csv"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// Cell values read as null from delimited text.
var DefaultNullValues = []string{"", "NA", "N/A", "NaN", "nan", "NULL", "null", "None", "#N/A"}

type CSVOptions struct {
	Comma      rune
	NullValues []string
}

func (obj CSVOptions) comma() rune {
	if obj.Comma == 0 {
		return ','
	}
	return obj.Comma
}

func (obj CSVOptions) nullValues() []string {
	if len(obj.NullValues) == 0 {
		return DefaultNullValues
	}
	return obj.NullValues
}

/*
* Reads delimited text with a header row into a single record. Column
* types are inferred from every non-null cell of the column: int64,
* then float64, then bool, falling back to utf8. Columns without any
* non-null cell are utf8. Cells matching a null value are null in every
* column type. Surrounding spaces are ignored in non-utf8 columns.
 */
func ReadCSV(mem *memory.GoAllocator, data []byte, options CSVOptions) (arrow.Record, error) {
	header, rows, err := scanCSV(data, options)
	if err != nil {
		return nil, err
	}
	schema := inferCSVSchema(header, rows, options.nullValues())

	data, err = trimTypedCells(data, header, rows, schema, options)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(
		bytes.NewReader(data),
		schema,
		csv.WithAllocator(mem),
		csv.WithHeader(true),
		csv.WithComma(options.comma()),
		csv.WithChunk(-1),
		csv.WithNullReader(true, options.nullValues()...),
	)
	defer reader.Release()

	if !reader.Next() {
		if reader.Err() != nil {
			return nil, errs.NewStackError(reader.Err())
		}
		return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("csv reader returned no record")), ErrNoDataSupplied)
	}
	if reader.Err() != nil {
		return nil, errs.NewStackError(reader.Err())
	}

	record := reader.Record()
	record.Retain()
	return record, nil
}

func InferCSVSchema(data []byte, options CSVOptions) (*arrow.Schema, error) {
	header, rows, err := scanCSV(data, options)
	if err != nil {
		return nil, err
	}
	return inferCSVSchema(header, rows, options.nullValues()), nil
}

func scanCSV(data []byte, options CSVOptions) ([]string, [][]string, error) {
	reader := stdcsv.NewReader(bytes.NewReader(data))
	reader.Comma = options.comma()

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errs.Wrap(errs.NewStackError(fmt.Errorf("csv data is empty")), ErrNoHeader)
	} else if err != nil {
		return nil, nil, errs.NewStackError(err)
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errs.NewStackError(err)
	}
	return header, rows, nil
}

func inferCSVSchema(header []string, rows [][]string, nulls []string) *arrow.Schema {
	fields := make([]arrow.Field, len(header))
	for idx, name := range header {
		fields[idx] = arrow.Field{
			Name:     name,
			Type:     inferColumnType(rows, idx, nulls),
			Nullable: true,
		}
	}
	return arrow.NewSchema(fields, nil)
}

func inferColumnType(rows [][]string, idx int, nulls []string) arrow.DataType {
	isInt, isFloat, isBool := true, true, true
	seen := false
	for _, row := range rows {
		value := strings.TrimSpace(row[idx])
		if slices.Contains(nulls, row[idx]) || slices.Contains(nulls, value) {
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if _, err := strconv.ParseBool(value); err != nil {
				isBool = false
			}
		}
		if !isInt && !isFloat && !isBool {
			break
		}
	}

	switch {
	case !seen:
		return arrow.BinaryTypes.String
	case isInt:
		return arrow.PrimitiveTypes.Int64
	case isFloat:
		return arrow.PrimitiveTypes.Float64
	case isBool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

// trimTypedCells re-encodes the data when a non-utf8 column has a cell
// with surrounding spaces, otherwise the data is returned unchanged.
func trimTypedCells(data []byte, header []string, rows [][]string, schema *arrow.Schema, options CSVOptions) ([]byte, error) {
	changed := false
	for idx, field := range schema.Fields() {
		if arrow.TypeEqual(field.Type, arrow.BinaryTypes.String) {
			continue
		}
		for _, row := range rows {
			if trimmed := strings.TrimSpace(row[idx]); trimmed != row[idx] {
				row[idx] = trimmed
				changed = true
			}
		}
	}
	if !changed {
		return data, nil
	}

	var buf bytes.Buffer
	writer := stdcsv.NewWriter(&buf)
	writer.Comma = options.comma()
	if err := writer.Write(header); err != nil {
		return nil, errs.NewStackError(err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, errs.NewStackError(err)
	}
	return buf.Bytes(), nil
}

/*
* Writes the record with a header row and no index column. Null cells
* are written as empty fields.
 */
func WriteRecordToCSV(record arrow.Record, w io.Writer, options CSVOptions) error {
	writer := csv.NewWriter(
		w,
		record.Schema(),
		csv.WithHeader(true),
		csv.WithComma(options.comma()),
		csv.WithNullWriter(""),
	)
	if err := writer.Write(record); err != nil {
		return errs.NewStackError(err)
	}
	if err := writer.Flush(); err != nil {
		return errs.NewStackError(err)
	}
	return nil
}
