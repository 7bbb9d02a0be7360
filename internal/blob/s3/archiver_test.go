package s3blob

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadup/arbscan/internal/domain"
)

type fakeWriter struct {
	path        string
	contentType string
	data        []byte
}

func (f *fakeWriter) Put(ctx context.Context, path string, data io.Reader, contentType string) error {
	f.path = path
	f.contentType = contentType
	b, err := io.ReadAll(data)
	f.data = b
	return err
}

func TestSnapshotArchiver(t *testing.T) {
	w := &fakeWriter{}
	a := NewSnapshotArchiver(w)

	snap := domain.Snapshot{
		SpotFutures: []domain.SpotFuturesOpportunity{{
			Symbol: "BTCUSDT", BaseAsset: "BTC", SpreadPercent: 2.0,
		}},
		UpdatedAt: time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC),
	}

	require.NoError(t, a.Archive(context.Background(), snap))

	assert.Equal(t, "snapshots/2025-01-02/150405.json", w.path)
	assert.Equal(t, "application/json", w.contentType)

	var got domain.Snapshot
	require.NoError(t, json.Unmarshal(w.data, &got))
	require.Len(t, got.SpotFutures, 1)
	assert.Equal(t, "BTCUSDT", got.SpotFutures[0].Symbol)
}
