package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spreadup/arbscan/internal/domain"
)

// BlobWriter is the upload capability the archiver needs; Writer satisfies
// it. Kept narrow so tests can fake the store without an S3 endpoint.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}

// SnapshotArchiver uploads each scan cycle's snapshot to object storage, one
// JSON document per cycle, partitioned by day. The archive is a write-only
// audit trail of what the detectors saw; nothing in the serving path reads
// it back.
type SnapshotArchiver struct {
	writer BlobWriter
}

// NewSnapshotArchiver creates an archiver writing through the given blob
// writer.
func NewSnapshotArchiver(writer BlobWriter) *SnapshotArchiver {
	return &SnapshotArchiver{writer: writer}
}

// Archive serializes the snapshot and uploads it. The object key embeds the
// snapshot timestamp down to the second, so overlapping cycles never
// overwrite each other.
func (a *SnapshotArchiver) Archive(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("s3blob: marshal snapshot: %w", err)
	}

	path := snapshotPath(snap.UpdatedAt)
	if err := a.writer.Put(ctx, path, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("s3blob: archive snapshot: %w", err)
	}
	return nil
}

// snapshotPath builds the object key for one cycle's snapshot:
//
//	snapshots/2025-01-02/150405.json
func snapshotPath(at time.Time) string {
	return fmt.Sprintf("snapshots/%s/%s.json",
		at.UTC().Format("2006-01-02"), at.UTC().Format("150405"))
}
