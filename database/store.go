package database

import (
	"context"
	"errors"
	"regexp"
	"time"

	"article-registry-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound covers both a missing record and a malformed id; callers
	// must not be able to tell the two apart.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey signals a unique-index violation.
	ErrDuplicateKey = errors.New("duplicate key")
)

// searchableFields are the article fields matched by the list search term.
var searchableFields = []string{
	"articleCode",
	"articleName",
	"colorCode",
	"colorName",
	"treatmentName",
	"section",
	"season",
}

// searchFilter builds a case-insensitive OR filter over the searchable
// fields. The term is escaped so regex metacharacters match literally
// (substring semantics, not caller-supplied patterns).
func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	or := make([]bson.M, 0, len(searchableFields))
	for _, field := range searchableFields {
		or = append(or, bson.M{field: pattern})
	}
	return bson.M{"$or": or}
}

// setDoc maps every caller-writable field plus updatedAt. createdAt is
// deliberately absent so replaces and upserts never touch it.
func setDoc(a models.Article) bson.M {
	return bson.M{
		"articleCode":   a.ArticleCode,
		"colorCode":     a.ColorCode,
		"treatmentName": a.TreatmentName,
		"articleName":   a.ArticleName,
		"colorName":     a.ColorName,
		"supplier":      a.Supplier,
		"supplierCode":  a.SupplierCode,
		"section":       a.Section,
		"season":        a.Season,
		"suppArtCode":   a.SuppArtCode,
		"composition":   a.Composition,
		"weave":         a.Weave,
		"stretch":       a.Stretch,
		"construction":  a.Construction,
		"weightGSM":     a.WeightGSM,
		"widthCM":       a.WidthCM,
		"dyeType":       a.DyeType,
		"careLabel":     a.CareLabel,
		"barcodeQR":     a.BarcodeQR,
		"basePriceEUR":  a.BasePriceEUR,
		"extraFields":   a.ExtraFields,
		"updatedAt":     a.UpdatedAt,
	}
}

// List returns up to limit articles in store order, optionally filtered by a
// case-insensitive substring search across the searchable fields.
func (s *Store) List(ctx context.Context, search string, limit int64) ([]models.Article, error) {
	cur, err := s.articles.Find(ctx, searchFilter(search), options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	articles := []models.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Get fetches a single article by its hex id.
func (s *Store) Get(ctx context.Context, id string) (*models.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var a models.Article
	err = s.articles.FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Insert stores a new article and returns it with the store-assigned id.
func (s *Store) Insert(ctx context.Context, a models.Article) (*models.Article, error) {
	a.ID = primitive.NilObjectID // identity is store-assigned
	res, err := s.articles.InsertOne(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return &a, nil
}

// Replace overwrites every caller-writable field of the record matching id
// and returns the updated document. createdAt keeps its original value. A
// no-op replacement is still a successful replace; only a missing id yields
// ErrNotFound.
func (s *Store) Replace(ctx context.Context, id string, a models.Article) (*models.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var updated models.Article
	err = s.articles.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": setDoc(a)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the record matching id.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.articles.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll unconditionally wipes the collection and returns the count.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.articles.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Upsert inserts or fully replaces the record matching the business triple
// in one atomic operation; $setOnInsert keeps createdAt stable across
// updates. Reports whether a new record was inserted.
func (s *Store) Upsert(ctx context.Context, a models.Article) (bool, error) {
	filter := bson.M{
		"articleCode":   a.ArticleCode,
		"colorCode":     a.ColorCode,
		"treatmentName": a.TreatmentName,
	}
	update := bson.M{
		"$set":         setDoc(a),
		"$setOnInsert": bson.M{"createdAt": a.CreatedAt},
	}
	res, err := s.articles.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// FindKey looks up an idempotency record; a missing key returns (nil, nil).
func (s *Store) FindKey(ctx context.Context, key string) (*models.IdempotencyKey, error) {
	var rec models.IdempotencyKey
	err := s.idempotency.FindOne(ctx, bson.M{"key": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateKey stores a pending idempotency record. A concurrent insert of the
// same key surfaces as ErrDuplicateKey via the unique index.
func (s *Store) CreateKey(ctx context.Context, rec models.IdempotencyKey) error {
	_, err := s.idempotency.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// CompleteKey records the response for a finished request under key.
func (s *Store) CompleteKey(ctx context.Context, key string, status int, body []byte) error {
	now := time.Now().UTC()
	_, err := s.idempotency.UpdateOne(ctx, bson.M{"key": key}, bson.M{"$set": bson.M{
		"responseStatus": status,
		"responseBody":   body,
		"completedAt":    now,
	}})
	return err
}
