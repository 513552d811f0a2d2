package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/inkling-notes/inkling-server/internal/note"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements NoteRepository on a MongoDB collection. Single-note
// atomicity comes from Mongo's per-document guarantees; updates are $set of
// the provided fields only (field-level last-write-wins, no version counter).
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// userId is in every filter; index it for list/search
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}}}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func ownerFilter(userID, id string) bson.M {
	return bson.M{"_id": id, "userId": userID}
}

func (m *MongoRepo) List(ctx context.Context, userID, search string) ([]*note.Note, error) {
	filter := bson.M{"userId": userID}
	if search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"tags": bson.M{"$elemMatch": bson.M{"$regex": re}}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*note.Note{}
	for cur.Next(ctx) {
		var n note.Note
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		out = append(out, n.Normalize())
	}
	return out, cur.Err()
}

func (m *MongoRepo) Get(ctx context.Context, userID, id string) (*note.Note, error) {
	var n note.Note
	err := m.col.FindOne(ctx, ownerFilter(userID, id)).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n.Normalize(), nil
}

func (m *MongoRepo) Create(ctx context.Context, userID, title, content string) (*note.Note, error) {
	if title == "" {
		title = "Untitled"
	}
	now := time.Now().UTC()
	n := &note.Note{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      []string{},
		AIOutputs: []note.AIOutput{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := m.col.InsertOne(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (m *MongoRepo) Update(ctx context.Context, userID, id string, patch note.Patch) (*note.Note, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Summary != nil {
		set["summary"] = *patch.Summary
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.IsPinned != nil {
		set["isPinned"] = *patch.IsPinned
	}
	if patch.AIOutputs != nil {
		set["aiOutputs"] = *patch.AIOutputs
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n note.Note
	err := m.col.FindOneAndUpdate(ctx, ownerFilter(userID, id), bson.M{"$set": set}, opts).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n.Normalize(), nil
}

func (m *MongoRepo) AppendHistory(ctx context.Context, userID, id string, entry note.AIOutput) (*note.Note, error) {
	entry.ID = primitive.NewObjectID().Hex()
	entry.CreatedAt = time.Now().UTC()

	update := bson.M{
		"$push": bson.M{"aiOutputs": bson.M{"$each": bson.A{entry}, "$position": 0}},
		"$set":  bson.M{"updatedAt": entry.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n note.Note
	err := m.col.FindOneAndUpdate(ctx, ownerFilter(userID, id), update, opts).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n.Normalize(), nil
}

func (m *MongoRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := m.col.DeleteOne(ctx, ownerFilter(userID, id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
