package dataset

import (
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

const readBatch = 256

func readParquet(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("open", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.NewIOError("stat", path, err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, errors.NewIOError("open parquet", path, err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	records := make([]Record, 0, reader.NumRows())
	buf := make([]Record, readBatch)
	for {
		n, err := reader.Read(buf)
		records = append(records, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIOError("read parquet rows", path, err)
		}
	}
	return records, nil
}

// WriteParquet writes records to path using the Record schema.
func WriteParquet(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("create", path, err)
	}
	defer f.Close()

	writer := parquet.NewGenericWriter[Record](f)
	if _, err := writer.Write(records); err != nil {
		return errors.NewIOError("write parquet", path, err)
	}
	if err := writer.Close(); err != nil {
		return errors.NewIOError("close writer", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewIOError("close", path, err)
	}
	return nil
}
