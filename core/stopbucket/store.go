package stopbucket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"transit-manager/core/storage"
	"transit-manager/core/transit"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const extension = ".json"

// Store keeps stops in object storage.
type Store struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// New creates a Store writing under prefix in bucket.
func New(client storage.Client, bucket, prefix string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// Key returns the object key of a stop.
func (s *Store) Key(stopID int) string {
	return path.Join(s.prefix, strconv.Itoa(stopID)+extension)
}

// GetStop downloads and decodes a stop.
func (s *Store) GetStop(ctx context.Context, stopID int) (*transit.Stop, error) {
	key := s.Key(stopID)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.readError(stopID, key, err)
	}
	defer obj.Close()

	// minio objects are lazy; a missing key surfaces on the first read
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.readError(stopID, key, err)
	}

	var stop transit.Stop
	if err := json.Unmarshal(data, &stop); err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "decode object %s", key)
	}
	return &stop, nil
}

func (s *Store) readError(stopID int, key string, err error) error {
	if storage.IsNotFound(err) {
		return transit.NewError(transit.KindStopNotFound, "stop %d not found in bucket %s", stopID, s.bucket)
	}
	return transit.Wrap(transit.KindStopGetterUnavailable, err, "read object %s", key)
}

// SaveStop uploads a stop. With update false an existing object is kept.
func (s *Store) SaveStop(ctx context.Context, stop *transit.Stop, update bool) error {
	key := s.Key(stop.ID)

	if !update {
		_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
		if err == nil {
			return nil
		}
		if !storage.IsNotFound(err) {
			return transit.Wrap(transit.KindStopSetterUnavailable, err, "stat object %s", key)
		}
	}

	data, err := json.Marshal(stop)
	if err != nil {
		return transit.Wrap(transit.KindStopSetterUnavailable, err, "encode stop %d", stop.ID)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return transit.Wrap(transit.KindStopSetterUnavailable, err, "put object %s", key)
	}
	s.logger.Debug("Stop uploaded", zap.String("key", key))
	return nil
}

// DeleteStop removes the object of a stop. S3 deletes are idempotent.
func (s *Store) DeleteStop(ctx context.Context, stopID int) error {
	key := s.Key(stopID)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if storage.IsNotFound(err) {
			return nil
		}
		return transit.Wrap(transit.KindStopDeleterUnavailable, err, "remove object %s", key)
	}
	return nil
}

// ListStopIDs lists every stop object under the prefix, in ascending order.
// Keys that do not look like "<id>.json" are skipped.
func (s *Store) ListStopIDs(ctx context.Context) ([]int, error) {
	prefix := s.prefix
	if prefix != "" {
		prefix += "/"
	}

	var ids []int
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if !strings.HasSuffix(name, extension) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, extension))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
