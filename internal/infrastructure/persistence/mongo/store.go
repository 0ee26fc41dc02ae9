// Package mongo stores one BSON document per list in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/storage/document"
)

// CollectionName is the collection holding list documents.
const CollectionName = "lists"

// Config holds MongoDB connection settings.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration // default: 10s
}

// Store is the MongoDB implementation of lists.Repository.
// List IDs are the hex form of the document ObjectID.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

var _ lists.Repository = (*Store)(nil)

// record is the stored shape: the shared document plus the Mongo _id.
type record struct {
	ObjectID      primitive.ObjectID `bson:"_id"`
	document.List `bson:",inline"`
}

// NewStore connects, pings and ensures the query indexes exist.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := NewStoreWithClient(client, cfg.Database)
	if err := s.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// NewStoreWithClient creates a store on an existing client.
func NewStoreWithClient(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
		now:    document.Now,
	}
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "categoria", Value: 1}}},
		{Keys: sortOrder()},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.List, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListNotFound
	}

	var rec record
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return rec.toDomain(), nil
}

func (s *Store) ExistsByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, unavailable(err)
	}
	return n > 0, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return unavailable(err)
	}
	return nil
}

// Save upserts the document. creadaEn is only written on insert so the
// stored value always wins.
func (s *Store) Save(ctx context.Context, list *domain.List) (*domain.List, error) {
	saved := list.Clone()

	var oid primitive.ObjectID
	newID := func() (string, error) {
		oid = primitive.NewObjectID()
		return oid.Hex(), nil
	}
	inserted, err := document.Stamp(saved, s.now(), newID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		if oid, err = primitive.ObjectIDFromHex(saved.ID); err != nil {
			return nil, domain.ErrListNotFound
		}
	}

	doc := document.FromDomain(saved)
	update := bson.M{
		"$set": bson.M{
			"titulo":        doc.Titulo,
			"categoria":     doc.Categoria,
			"fechaObjetivo": doc.FechaObjetivo,
			"descripcion":   doc.Descripcion,
			"actualizadaEn": doc.ActualizadaEn,
			"items":         doc.Items,
		},
		"$setOnInsert": bson.M{"creadaEn": doc.CreadaEn},
	}

	var rec record
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		return nil, unavailable(err)
	}
	return rec.toDomain(), nil
}

func (s *Store) FindAll(ctx context.Context) ([]*domain.List, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) FindByCategory(ctx context.Context, category string) ([]*domain.List, error) {
	return s.find(ctx, categoryFilter(category))
}

func (s *Store) FindByTitleContaining(ctx context.Context, query string) ([]*domain.List, error) {
	return s.find(ctx, titleFilter(query))
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]*domain.List, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(sortOrder()))
	if err != nil {
		return nil, unavailable(err)
	}
	defer cur.Close(ctx)

	result := []*domain.List{}
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, unavailable(err)
		}
		result = append(result, rec.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, unavailable(err)
	}
	return result, nil
}

// categoryFilter matches the whole category, ignoring case.
func categoryFilter(category string) bson.M {
	return bson.M{"categoria": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(category) + "$",
		Options: "i",
	}}
}

// titleFilter matches titles containing query literally, ignoring case.
func titleFilter(query string) bson.M {
	return bson.M{"titulo": primitive.Regex{
		Pattern: regexp.QuoteMeta(query),
		Options: "i",
	}}
}

// sortOrder puts missing and null dates first, as MongoDB sorts them lowest.
func sortOrder() bson.D {
	return bson.D{
		{Key: "fechaObjetivo", Value: 1},
		{Key: "creadaEn", Value: -1},
		{Key: "_id", Value: 1},
	}
}

func (r record) toDomain() *domain.List {
	r.List.ID = r.ObjectID.Hex()
	return r.List.ToDomain()
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
