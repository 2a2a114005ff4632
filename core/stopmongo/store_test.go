package stopmongo

import (
	"context"
	"testing"
	"time"

	"transit-manager/core/transit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newStore(mt *mtest.T) *Store {
	s := New(mt.Coll, nil)
	s.now = func() time.Time { return time.Unix(100, 0) }
	return s
}

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int32(7)},
			{Key: "name", Value: "Plaza"},
			{Key: "lat", Value: 42.2},
			{Key: "lon", Value: -8.7},
			{Key: "other", Value: bson.D{{Key: "zone", Value: "A"}}},
			{Key: "saved", Value: int64(10)},
			{Key: "updated", Value: int64(20)},
		}))

		stop, err := newStore(mt).GetStop(ctx, 7)
		require.NoError(mt, err)
		assert.Equal(mt, 7, stop.ID)
		assert.Equal(mt, "Plaza", stop.Name)
		require.True(mt, stop.HasLocation())
		assert.Equal(mt, 42.2, *stop.Lat)
		assert.Equal(mt, "A", stop.Extra["zone"])
		assert.Equal(mt, int64(10), stop.Extra["saved"])
	})

	mt.Run("get not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		_, err := newStore(mt).GetStop(ctx, 7)
		assert.ErrorIs(mt, err, transit.ErrStopNotFound)
	})

	mt.Run("get failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "boom"}))

		_, err := newStore(mt).GetStop(ctx, 7)
		assert.ErrorIs(mt, err, transit.ErrStopGetterUnavailable)
	})

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := newStore(mt).SaveStop(ctx, &transit.Stop{ID: 7, Name: "Plaza"}, true)
		assert.NoError(mt, err)
	})

	mt.Run("save failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "dup"}))

		err := newStore(mt).SaveStop(ctx, &transit.Stop{ID: 7}, false)
		assert.ErrorIs(mt, err, transit.ErrStopSetterUnavailable)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.NoError(mt, newStore(mt).DeleteStop(ctx, 7))
	})

	mt.Run("list ids", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int32(1)}},
			bson.D{{Key: "_id", Value: int32(4)}},
		)
		next := mtest.CreateCursorResponse(0, ns(mt), mtest.NextBatch,
			bson.D{{Key: "_id", Value: int32(9)}},
		)
		mt.AddMockResponses(first, next)

		ids, err := newStore(mt).ListStopIDs(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, []int{1, 4, 9}, ids)
	})
}

func TestDocument_ToStopWithoutOther(t *testing.T) {
	doc := document{ID: 3, Saved: 1, Updated: 2}
	stop := doc.toStop()
	assert.Equal(t, 3, stop.ID)
	assert.False(t, stop.HasLocation())
	assert.Equal(t, map[string]any{"saved": int64(1), "updated": int64(2)}, stop.Extra)
}
