package arrowops

import (
	"bytes"
	"context"
	"io"

	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	parquetFileUtils "github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

func WriteRecordToParquet(ctx context.Context, mem *memory.GoAllocator, record arrow.Record, w io.Writer) error {
	parquetWriteProps := parquet.NewWriterProperties(parquet.WithStats(true), parquet.WithAllocator(mem))
	arrowWriteProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	parquetFileWriter, err := pqarrow.NewFileWriter(record.Schema(), w, parquetWriteProps, arrowWriteProps)
	if err != nil {
		return errs.NewStackError(err)
	}

	if err := parquetFileWriter.Write(record); err != nil {
		parquetFileWriter.Close()
		return errs.NewStackError(err)
	}
	if err := parquetFileWriter.Close(); err != nil {
		return errs.NewStackError(err)
	}
	return nil
}

/*
* Reads every row group of the parquet data. The caller owns the
* returned records and must release them.
 */
func ReadParquet(ctx context.Context, mem *memory.GoAllocator, data []byte) ([]arrow.Record, error) {
	parquetFileReader, err := parquetFileUtils.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.NewStackError(err)
	}
	defer parquetFileReader.Close()

	parquetReadProps := pqarrow.ArrowReadProperties{
		Parallel:  false,
		BatchSize: 1 << 16,
	}
	arrowFileReader, err := pqarrow.NewFileReader(parquetFileReader, parquetReadProps, mem)
	if err != nil {
		return nil, errs.NewStackError(err)
	}

	recordReader, err := arrowFileReader.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return nil, errs.NewStackError(err)
	}
	defer recordReader.Release()

	records := make([]arrow.Record, 0)
	for recordReader.Next() {
		record := recordReader.Record()
		record.Retain()
		records = append(records, record)
	}
	if err := recordReader.Err(); err != nil && err != io.EOF {
		for _, record := range records {
			record.Release()
		}
		return nil, errs.NewStackError(err)
	}

	return records, nil
}

/*
* Reads the parquet data into one record. A file without rows yields
* an empty record with the file's schema.
 */
func ReadParquetRecord(ctx context.Context, mem *memory.GoAllocator, data []byte) (arrow.Record, error) {
	records, err := ReadParquet(ctx, mem, data)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, record := range records {
			record.Release()
		}
	}()

	if len(records) == 0 {
		schema, err := ParquetSchema(mem, data)
		if err != nil {
			return nil, err
		}
		return EmptyRecord(mem, schema), nil
	}
	return ConcatenateRecords(mem, records...)
}

func ParquetSchema(mem *memory.GoAllocator, data []byte) (*arrow.Schema, error) {
	parquetFileReader, err := parquetFileUtils.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.NewStackError(err)
	}
	defer parquetFileReader.Close()

	arrowFileReader, err := pqarrow.NewFileReader(parquetFileReader, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, errs.NewStackError(err)
	}
	schema, err := arrowFileReader.Schema()
	if err != nil {
		return nil, errs.NewStackError(err)
	}
	return schema, nil
}
