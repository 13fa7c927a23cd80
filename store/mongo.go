package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/functils/functils/config"
	"github.com/functils/functils/errors"
	"github.com/functils/functils/list"
	"github.com/functils/functils/log"
)

// Mongo is a Store backed by a MongoDB collection with one document per list.
type Mongo struct {
	coll *mongo.Collection
}

var _ Store = (*Mongo)(nil)

type listDoc struct {
	Name      string             `bson:"_id"`
	Items     *list.List[string] `bson:"items"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// NewMongo returns a Store using the lists collection of the functils database.
func NewMongo(client *mongo.Client) *Mongo {
	coll := client.Database(config.DatabaseName).Collection(config.ListsCollection)

	return &Mongo{coll: coll}
}

func (m *Mongo) Load(ctx context.Context, name string) (*list.List[string], error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	var doc listDoc

	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: name}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrapf(ErrNotFound, "%q", name)
		}

		return nil, errors.Wrapf(err, "find %q", name)
	}

	if doc.Items == nil {
		doc.Items = list.New[string]()
	}

	return doc.Items, nil
}

func (m *Mongo) Save(ctx context.Context, name string, l *list.List[string]) error {
	if err := checkName(name); err != nil {
		return err
	}

	_, err := m.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: name}},
		listDoc{
			Name:      name,
			Items:     l,
			UpdatedAt: time.Now(),
		},
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrapf(err, "save %q", name)
	}

	log.Ctx(ctx).With(log.ListName(name)).Trace("Saved")

	return nil
}

func (m *Mongo) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	res, err := m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: name}})
	if err != nil {
		return errors.Wrapf(err, "delete %q", name)
	}

	if res.DeletedCount == 0 {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}

	log.Ctx(ctx).With(log.ListName(name), log.Int64("deleted", res.DeletedCount)).Trace("Deleted")

	return nil
}

func (m *Mongo) Names(ctx context.Context) ([]string, error) {
	cur, err := m.coll.Find(ctx, bson.D{},
		options.Find().
			SetProjection(bson.D{{Key: "_id", Value: 1}}).
			SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "find")
	}

	var docs []struct {
		Name string `bson:"_id"`
	}

	err = cur.All(ctx, &docs)
	if err != nil {
		return nil, errors.Wrap(err, "read cursor")
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}

	return names, nil
}
