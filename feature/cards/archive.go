package cards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"card-sync/core/reconcile"
	"card-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// archivedSnapshot is the stored object layout.
type archivedSnapshot struct {
	RefreshedAt time.Time        `json:"refreshed_at"`
	Cards       []reconcile.Card `json:"cards"`
}

// Archive keeps the last good snapshot as a JSON object in object storage.
type Archive struct {
	client storage.Client
	bucket string
	object string
}

// NewArchive creates a snapshot archive at bucket/object.
func NewArchive(client storage.Client, bucket, object string) *Archive {
	return &Archive{client: client, bucket: bucket, object: object}
}

// Save uploads the snapshot, replacing the previous one.
func (a *Archive) Save(ctx context.Context, cards []reconcile.Card, refreshed time.Time) error {
	payload, err := json.Marshal(archivedSnapshot{RefreshedAt: refreshed, Cards: cards})
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, a.object, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("uploading snapshot to %s/%s: %w", a.bucket, a.object, err)
	}
	return nil
}

// Load downloads the snapshot. ok is false when none has been saved yet.
func (a *Archive) Load(ctx context.Context) ([]reconcile.Card, time.Time, bool, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, a.object, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, fmt.Errorf("downloading snapshot: %w", err)
	}
	defer obj.Close()

	// The object is fetched lazily, so a missing key surfaces on read
	raw, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap archivedSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap.Cards, snap.RefreshedAt, true, nil
}
