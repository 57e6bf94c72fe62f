package arrowops

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/linkedin/goavro/v2"
)

const avroRecordName = "row"

/*
* Writes the record as an avro object container file, one avro record
* per row. Every field is a ["null", <type>] union so missing cells
* survive the round trip.
 */
func WriteRecordToAvro(record arrow.Record, w io.Writer) error {
	codec, err := ArrowToAvroSchema(record.Schema())
	if err != nil {
		return err
	}

	ocfWriter, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               w,
		Codec:           codec,
		CompressionName: goavro.CompressionDeflateLabel,
	})
	if err != nil {
		return errs.NewStackError(err)
	}

	fieldNames := AvroFieldNames(record.Schema())
	rows := make([]interface{}, record.NumRows())
	for rowIdx := 0; rowIdx < int(record.NumRows()); rowIdx++ {
		row := make(map[string]interface{}, record.NumCols())
		for colIdx, col := range record.Columns() {
			val, err := ArrowArrayValueToAvroValue(col, rowIdx)
			if err != nil {
				return errs.Wrap(err, fmt.Errorf("column: %s, row: %d", record.ColumnName(colIdx), rowIdx))
			}
			row[fieldNames[colIdx]] = val
		}
		rows[rowIdx] = row
	}

	if len(rows) == 0 {
		return nil
	}
	if err := ocfWriter.Append(rows); err != nil {
		return errs.NewStackError(err)
	}
	return nil
}

/*
* Returns the avro union value for the cell: nil for a null cell,
* otherwise a single entry map keyed by the avro type name.
 */
func ArrowArrayValueToAvroValue(arr arrow.Array, idx int) (interface{}, error) {
	if arr.IsNull(idx) {
		return nil, nil
	}
	avroType, err := ArrowToAvroType(arr.DataType())
	if err != nil {
		return nil, err
	}

	var val interface{}
	switch arr.DataType().ID() {
	case arrow.BOOL:
		val = arr.(*array.Boolean).Value(idx)
	case arrow.INT8:
		val = int64(arr.(*array.Int8).Value(idx))
	case arrow.INT16:
		val = int64(arr.(*array.Int16).Value(idx))
	case arrow.INT32:
		val = int64(arr.(*array.Int32).Value(idx))
	case arrow.INT64:
		val = arr.(*array.Int64).Value(idx)
	case arrow.UINT8:
		val = int64(arr.(*array.Uint8).Value(idx))
	case arrow.UINT16:
		val = int64(arr.(*array.Uint16).Value(idx))
	case arrow.UINT32:
		val = int64(arr.(*array.Uint32).Value(idx))
	case arrow.UINT64:
		val = int64(arr.(*array.Uint64).Value(idx))
	case arrow.FLOAT16:
		val = float64(arr.(*array.Float16).Value(idx).Float32())
	case arrow.FLOAT32:
		val = float64(arr.(*array.Float32).Value(idx))
	case arrow.FLOAT64:
		val = arr.(*array.Float64).Value(idx)
	case arrow.STRING:
		val = arr.(*array.String).Value(idx)
	case arrow.BINARY:
		val = arr.(*array.Binary).Value(idx)
	case arrow.DATE32:
		val = int64(arr.(*array.Date32).Value(idx))
	case arrow.DATE64:
		val = int64(arr.(*array.Date64).Value(idx))
	case arrow.TIMESTAMP:
		val = int64(arr.(*array.Timestamp).Value(idx))
	case arrow.TIME32:
		val = int64(arr.(*array.Time32).Value(idx))
	case arrow.TIME64:
		val = int64(arr.(*array.Time64).Value(idx))
	case arrow.DURATION:
		val = int64(arr.(*array.Duration).Value(idx))
	default:
		return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("avro value for %s", arr.DataType())), ErrUnsupportedDataType)
	}
	return goavro.Union(avroType, val), nil
}

func ArrowToAvroSchema(arrowSchema *arrow.Schema) (*goavro.Codec, error) {
	type avroField struct {
		Name string      `json:"name"`
		Doc  string      `json:"doc,omitempty"`
		Type interface{} `json:"type"`
	}
	type avroSchemaTemplate struct {
		Type   string      `json:"type"`
		Name   string      `json:"name"`
		Fields []avroField `json:"fields"`
	}

	avroSchema := avroSchemaTemplate{
		Type:   "record",
		Name:   avroRecordName,
		Fields: make([]avroField, 0, arrowSchema.NumFields()),
	}

	fieldNames := AvroFieldNames(arrowSchema)
	for idx, field := range arrowSchema.Fields() {
		avroType, err := ArrowToAvroType(field.Type)
		if err != nil {
			return nil, errs.Wrap(err, fmt.Errorf("field: %s", field.Name))
		}
		f := avroField{
			Name: fieldNames[idx],
			Type: []string{"null", avroType},
		}
		if f.Name != field.Name {
			f.Doc = field.Name
		}
		avroSchema.Fields = append(avroSchema.Fields, f)
	}

	codecData, err := json.Marshal(avroSchema)
	if err != nil {
		return nil, errs.NewStackError(err)
	}
	codec, err := goavro.NewCodec(string(codecData))
	if err != nil {
		return nil, errs.NewStackError(err)
	}

	return codec, nil
}

func ArrowToAvroType(arrowType arrow.DataType) (string, error) {
	switch arrowType.ID() {
	case arrow.BOOL:
		return "boolean", nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64:
		return "long", nil
	case arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return "long", nil
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return "double", nil
	case arrow.STRING:
		return "string", nil
	case arrow.BINARY:
		return "bytes", nil
	case arrow.DATE32, arrow.DATE64, arrow.TIMESTAMP, arrow.TIME32, arrow.TIME64, arrow.DURATION:
		return "long", nil
	default:
		return "", errs.Wrap(errs.NewStackError(fmt.Errorf("avro type for %s", arrowType)), ErrUnsupportedDataType)
	}
}

/*
* Maps column names onto the avro name grammar [A-Za-z_][A-Za-z0-9_]*.
* Invalid characters become underscores and repeated names get a
* numeric suffix.
 */
func AvroFieldNames(schema *arrow.Schema) []string {
	names := make([]string, schema.NumFields())
	used := make(map[string]int, schema.NumFields())
	for idx, field := range schema.Fields() {
		name := sanitizeAvroName(field.Name)
		if count, ok := used[name]; ok {
			used[name] = count + 1
			name = fmt.Sprintf("%s_%d", name, count+1)
		}
		used[name] = 0
		names[idx] = name
	}
	return names
}

func sanitizeAvroName(name string) string {
	var sb strings.Builder
	for idx, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if idx == 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}
