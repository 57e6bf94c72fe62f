package arrowops

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatAvro    Format = "avro"
)

func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatParquet, FormatAvro:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", errs.Wrap(errs.NewStackError(fmt.Errorf("format %q", name)), ErrUnsupportedFormat)
	}
}

func (obj Format) Extension() string {
	return "." + string(obj)
}

/*
* Serializes the whole record in the given format. CSV output uses the
* comma delimiter.
 */
func EncodeRecord(ctx context.Context, mem *memory.GoAllocator, record arrow.Record, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatCSV:
		err = WriteRecordToCSV(record, &buf, CSVOptions{})
	case FormatParquet:
		err = WriteRecordToParquet(ctx, mem, record, &buf)
	case FormatAvro:
		err = WriteRecordToAvro(record, &buf)
	default:
		return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("format %q", format)), ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, errs.Wrap(err, fmt.Errorf("failed to encode record as %s", format))
	}
	return buf.Bytes(), nil
}
