package stopbucket_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"transit-manager/core/stopbucket"
	"transit-manager/core/storage/mocks"
	"transit-manager/core/transit"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStore_GetStop(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		m := new(mocks.Client)
		body := `{"id":5,"name":"Colón","lat":42.2,"lon":-8.7,"extra":{"zone":"A"}}`
		m.On("GetObject", mock.Anything, "transit", "stops/5.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(body))), nil)

		store := stopbucket.New(m, "transit", "stops/", nil)
		stop, err := store.GetStop(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Colón", stop.Name)
		assert.True(t, stop.HasLocation())
		assert.Equal(t, "A", stop.Extra["zone"])
	})

	t.Run("No such key", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "transit", "stops/6.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := stopbucket.New(m, "transit", "stops", nil).GetStop(ctx, 6)
		assert.ErrorIs(t, err, transit.ErrStopNotFound)
	})

	t.Run("Storage failure", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "transit", "stops/6.json", mock.Anything).
			Return(nil, errors.New("dial tcp: i/o timeout"))

		_, err := stopbucket.New(m, "transit", "stops", nil).GetStop(ctx, 6)
		assert.ErrorIs(t, err, transit.ErrStopGetterUnavailable)
	})

	t.Run("Malformed object", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", mock.Anything, "transit", "stops/6.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("{"))), nil)

		_, err := stopbucket.New(m, "transit", "stops", nil).GetStop(ctx, 6)
		assert.ErrorIs(t, err, transit.ErrStopGetterUnavailable)
	})
}

func TestStore_SaveStop(t *testing.T) {
	ctx := context.Background()
	stop := &transit.Stop{ID: 9, Name: "Urzaiz"}

	t.Run("Update uploads", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("PutObject", mock.Anything, "transit", "stops/9.json", mock.Anything, mock.Anything, mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "application/json"
		})).Return(minio.UploadInfo{}, nil)

		require.NoError(t, stopbucket.New(m, "transit", "stops", nil).SaveStop(ctx, stop, true))
		m.AssertExpectations(t)
		m.AssertNotCalled(t, "StatObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Existing object kept", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("StatObject", mock.Anything, "transit", "stops/9.json", mock.Anything).Return(minio.ObjectInfo{Key: "stops/9.json"}, nil)

		require.NoError(t, stopbucket.New(m, "transit", "stops", nil).SaveStop(ctx, stop, false))
		m.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing object inserted", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("StatObject", mock.Anything, "transit", "stops/9.json", mock.Anything).Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})
		m.On("PutObject", mock.Anything, "transit", "stops/9.json", mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

		require.NoError(t, stopbucket.New(m, "transit", "stops", nil).SaveStop(ctx, stop, false))
		m.AssertExpectations(t)
	})

	t.Run("Upload fails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("PutObject", mock.Anything, "transit", "stops/9.json", mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, errors.New("503"))

		err := stopbucket.New(m, "transit", "stops", nil).SaveStop(ctx, stop, true)
		assert.ErrorIs(t, err, transit.ErrStopSetterUnavailable)
	})
}

func TestStore_DeleteStop(t *testing.T) {
	ctx := context.Background()

	m := new(mocks.Client)
	m.On("RemoveObject", mock.Anything, "transit", "stops/1.json", mock.Anything).Return(nil)
	m.On("RemoveObject", mock.Anything, "transit", "stops/2.json", mock.Anything).Return(errors.New("access denied"))

	store := stopbucket.New(m, "transit", "stops", nil)
	assert.NoError(t, store.DeleteStop(ctx, 1))
	assert.ErrorIs(t, store.DeleteStop(ctx, 2), transit.ErrStopDeleterUnavailable)
}

func TestStore_ListStopIDs(t *testing.T) {
	m := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 4)
	ch <- minio.ObjectInfo{Key: "stops/30.json"}
	ch <- minio.ObjectInfo{Key: "stops/4.json"}
	ch <- minio.ObjectInfo{Key: "stops/readme.txt"}
	ch <- minio.ObjectInfo{Key: "stops/x.json"}
	close(ch)
	m.On("ListObjects", mock.Anything, "transit", minio.ListObjectsOptions{Prefix: "stops/", Recursive: true}).Return(ch)

	ids, err := stopbucket.New(m, "transit", "stops", nil).ListStopIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{4, 30}, ids)
}
