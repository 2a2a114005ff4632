package stopmongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transit-manager/core/transit"
	"transit-manager/core/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// document is the stored form of a stop.
type document struct {
	ID      int            `bson:"_id"`
	Name    string         `bson:"name,omitempty"`
	Lat     *float64       `bson:"lat,omitempty"`
	Lon     *float64       `bson:"lon,omitempty"`
	Other   map[string]any `bson:"other,omitempty"`
	Saved   int64          `bson:"saved"`
	Updated int64          `bson:"updated"`
}

func (d *document) toStop() *transit.Stop {
	extra := make(map[string]any, len(d.Other)+2)
	for k, v := range d.Other {
		extra[k] = v
	}
	extra["saved"] = d.Saved
	extra["updated"] = d.Updated
	return &transit.Stop{ID: d.ID, Name: d.Name, Lat: d.Lat, Lon: d.Lon, Extra: extra}
}

// Connect opens a client and verifies the server answers.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// Store is a MongoDB backed stop store.
type Store struct {
	coll   *mongo.Collection
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Store over coll.
func New(coll *mongo.Collection, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{coll: coll, logger: logger, now: time.Now}
}

// GetStop reads a stop by id.
func (s *Store) GetStop(ctx context.Context, stopID int) (*transit.Stop, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: stopID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, transit.NewError(transit.KindStopNotFound, "stop %d not found in mongo", stopID)
	}
	if err != nil {
		return nil, transit.Wrap(transit.KindStopGetterUnavailable, err, "mongo lookup of stop %d", stopID)
	}
	return doc.toStop(), nil
}

// SaveStop upserts a stop document.
func (s *Store) SaveStop(ctx context.Context, stop *transit.Stop, update bool) error {
	now := s.now().Unix()
	fields := bson.D{}
	if stop.Name != "" {
		fields = append(fields, bson.E{Key: "name", Value: stop.Name})
	}
	if stop.HasLocation() {
		fields = append(fields, bson.E{Key: "lat", Value: *stop.Lat}, bson.E{Key: "lon", Value: *stop.Lon})
	}
	other := bson.M{}
	for k, v := range stop.Extra {
		if k == "saved" || k == "updated" || v == nil {
			continue
		}
		other[k] = v
	}
	if len(other) > 0 {
		fields = append(fields, bson.E{Key: "other", Value: other})
	}

	var change bson.D
	if update {
		change = bson.D{
			{Key: "$set", Value: append(fields, bson.E{Key: "updated", Value: now})},
			{Key: "$setOnInsert", Value: bson.D{{Key: "saved", Value: now}}},
		}
	} else {
		insert := append(fields, bson.E{Key: "saved", Value: now}, bson.E{Key: "updated", Value: now})
		change = bson.D{{Key: "$setOnInsert", Value: insert}}
	}

	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: stop.ID}},
		change,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return transit.Wrap(transit.KindStopSetterUnavailable, err, "mongo save of stop %d", stop.ID)
	}
	return nil
}

// DeleteStop removes a stop document.
func (s *Store) DeleteStop(ctx context.Context, stopID int) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: stopID}})
	if err != nil {
		return transit.Wrap(transit.KindStopDeleterUnavailable, err, "mongo delete of stop %d", stopID)
	}
	if res.DeletedCount == 0 {
		s.logger.Debug("Nothing deleted", zap.Int("stop_id", stopID))
	}
	return nil
}

// ListStopIDs returns every stored stop id in ascending order.
func (s *Store) ListStopIDs(ctx context.Context) ([]int, error) {
	cursor, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}).SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stop ids: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []int
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode stop id: %w", err)
		}
		// ids written by other clients may be stored as int64 or double
		ids = append(ids, utils.ToInt(doc["_id"]))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to list stop ids: %w", err)
	}
	return ids, nil
}
