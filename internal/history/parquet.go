package history

import (
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/pkg/errors"
	"io"
	"k8s.io/klog/v2"
	"os"
	"path/filepath"
)

// SchemaVersion is stored in the parquet metadata.
const SchemaVersion = "training_history_v1"

// WriteParquet saves the records to filePath. The file is first written to a temporary file and
// then renamed. A previous file is kept with a "~" suffix.
func WriteParquet(filePath string, records []Record) error {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory for %q", filePath)
		}
	}
	tmpPath := filePath + ".tmp"
	_ = os.Remove(tmpPath)
	if err := parquet.WriteFile(tmpPath, records,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		return errors.Wrapf(err, "failed to write parquet file %q", tmpPath)
	}

	if _, err := os.Stat(filePath); err == nil {
		backupPath := filePath + "~"
		if err := os.Rename(filePath, backupPath); err != nil {
			return errors.Wrapf(err, "failed to back up %q to %q", filePath, backupPath)
		}
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return errors.Wrapf(err, "failed to rename %q to %q", tmpPath, filePath)
	}
	klog.V(1).Infof("Saved %d history records to %q", len(records), filePath)
	return nil
}

// ReadParquet loads all records from filePath.
func ReadParquet(filePath string) ([]Record, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open history file %q", filePath)
	}
	defer func() { _ = f.Close() }()
	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %q", filePath)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse parquet file %q", filePath)
	}
	reader := parquet.NewGenericReader[Record](pf)
	defer func() { _ = reader.Close() }()

	records := make([]Record, reader.NumRows())
	total := 0
	for total < len(records) {
		n, err := reader.Read(records[total:])
		total += n
		if err == io.EOF || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read records from %q", filePath)
		}
	}
	return records[:total], nil
}
