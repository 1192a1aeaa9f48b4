package portfolio

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Insert(ctx context.Context, item Item) error
	List(ctx context.Context) ([]Item, error)
	GetBySlug(ctx context.Context, slug string) (Item, error)
	Update(ctx context.Context, slug string, set bson.M) (Item, error)
	Delete(ctx context.Context, slug string) (bool, error)
	PushImage(ctx context.Context, slug string, img Image, updatedAt time.Time) (Item, error)
	PullImage(ctx context.Context, slug, imageID string, updatedAt time.Time) (Item, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Insert(ctx context.Context, item Item) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) List(ctx context.Context) ([]Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Item, 0)
	for cursor.Next(ctx) {
		var item Item
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Item, error) {
	var item Item
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *MongoRepository) Update(ctx context.Context, slug string, set bson.M) (Item, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Item
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Item{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, slug string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) PushImage(ctx context.Context, slug string, img Image, updatedAt time.Time) (Item, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$push": bson.M{"images": img},
		"$set":  bson.M{"updatedAt": updatedAt},
	}

	var updated Item
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&updated); err != nil {
		return Item{}, err
	}
	return updated, nil
}

func (r *MongoRepository) PullImage(ctx context.Context, slug, imageID string, updatedAt time.Time) (Item, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$pull": bson.M{"images": bson.M{"_id": imageID}},
		"$set":  bson.M{"updatedAt": updatedAt},
	}

	var updated Item
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&updated); err != nil {
		return Item{}, err
	}
	return updated, nil
}
