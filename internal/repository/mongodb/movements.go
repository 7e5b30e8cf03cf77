package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vebops/store/internal/domain/models"
)

// ErrOutwardNotOpen signals an attempt to close an outward register that is
// missing or already closed.
var ErrOutwardNotOpen = errors.New("outward register is not open")

// descByDate sorts newest first; the ascending _id tiebreaker keeps records
// with equal dates in insertion order.
func descByDate(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: -1}, {Key: "_id", Value: 1}})
}

// ListInwards returns every goods-receipt record, entry date descending.
func (r *MongoDBRepository) ListInwards(ctx context.Context) ([]models.InwardRecord, error) {
	cursor, err := r.db.Collection(collInwards).Find(ctx, bson.D{}, descByDate("entry_date"))
	if err != nil {
		return nil, fmt.Errorf("list inwards: %w", err)
	}

	var records []models.InwardRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode inwards: %w", err)
	}
	return records, nil
}

// InsertInward appends a goods-receipt record.
func (r *MongoDBRepository) InsertInward(ctx context.Context, record models.InwardRecord) (models.InwardRecord, error) {
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.Collection(collInwards).InsertOne(ctx, record); err != nil {
		return models.InwardRecord{}, fmt.Errorf("insert inward: %w", err)
	}
	return record, nil
}

// ListOutwards returns every goods-issue record, register date descending.
func (r *MongoDBRepository) ListOutwards(ctx context.Context) ([]models.OutwardRecord, error) {
	cursor, err := r.db.Collection(collOutwards).Find(ctx, bson.D{}, descByDate("register_date"))
	if err != nil {
		return nil, fmt.Errorf("list outwards: %w", err)
	}

	var records []models.OutwardRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode outwards: %w", err)
	}
	return records, nil
}

// InsertOutward appends a goods-issue record.
func (r *MongoDBRepository) InsertOutward(ctx context.Context, record models.OutwardRecord) (models.OutwardRecord, error) {
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.Collection(collOutwards).InsertOne(ctx, record); err != nil {
		return models.OutwardRecord{}, fmt.Errorf("insert outward: %w", err)
	}
	return record, nil
}

// CloseOutward marks an open outward register closed. The lines themselves
// stay immutable; only status and close date change.
func (r *MongoDBRepository) CloseOutward(ctx context.Context, id string) (*models.OutwardRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("parse outward id %s: %w", id, err)
	}

	now := time.Now().UTC()
	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "status", Value: models.OutwardOpen},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: models.OutwardClosed},
		{Key: "close_date", Value: now},
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var record models.OutwardRecord
	err = r.db.Collection(collOutwards).FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOutwardNotOpen
	}
	if err != nil {
		return nil, fmt.Errorf("close outward %s: %w", id, err)
	}
	return &record, nil
}

// ListTransfers returns every transfer record, transfer date descending.
func (r *MongoDBRepository) ListTransfers(ctx context.Context) ([]models.TransferRecord, error) {
	cursor, err := r.db.Collection(collTransfers).Find(ctx, bson.D{}, descByDate("transfer_date"))
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	var records []models.TransferRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode transfers: %w", err)
	}
	return records, nil
}

// InsertTransfer appends a site-to-site transfer record.
func (r *MongoDBRepository) InsertTransfer(ctx context.Context, record models.TransferRecord) (models.TransferRecord, error) {
	record.ID = primitive.NewObjectID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.Collection(collTransfers).InsertOne(ctx, record); err != nil {
		return models.TransferRecord{}, fmt.Errorf("insert transfer: %w", err)
	}
	return record, nil
}
