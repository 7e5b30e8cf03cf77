package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vebops/store/internal/domain/models"
)

const (
	collProjects     = "projects"
	collMaterials    = "materials"
	collAllocations  = "allocations"
	collInwards      = "inwards"
	collOutwards     = "outwards"
	collTransfers    = "transfers"
	collUsers        = "users"
	collDailyReports = "daily_reports"
)

// Repository defines the persistence operations backing the ledger and the
// retrieval surface. Movement records are append-only: there is deliberately
// no update or delete operation for posted inwards, outwards or transfers.
type Repository interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	InsertProject(ctx context.Context, project models.Project) (models.Project, error)

	ListMaterials(ctx context.Context) ([]models.Material, error)
	FindMaterialByCode(ctx context.Context, code string) (*models.Material, error)
	InsertMaterial(ctx context.Context, material models.Material) (models.Material, error)

	ListAllocations(ctx context.Context) ([]models.Allocation, error)
	UpsertAllocation(ctx context.Context, allocation models.Allocation) error

	ListInwards(ctx context.Context) ([]models.InwardRecord, error)
	InsertInward(ctx context.Context, record models.InwardRecord) (models.InwardRecord, error)
	ListOutwards(ctx context.Context) ([]models.OutwardRecord, error)
	InsertOutward(ctx context.Context, record models.OutwardRecord) (models.OutwardRecord, error)
	CloseOutward(ctx context.Context, id string) (*models.OutwardRecord, error)
	ListTransfers(ctx context.Context) ([]models.TransferRecord, error)
	InsertTransfer(ctx context.Context, record models.TransferRecord) (models.TransferRecord, error)

	ListUsers(ctx context.Context) ([]models.UserAccount, error)
	FindUserByEmail(ctx context.Context, email string) (*models.UserAccount, error)
	FindUserByID(ctx context.Context, id string) (*models.UserAccount, error)
	InsertUser(ctx context.Context, user models.UserAccount) (models.UserAccount, error)
	CountUsers(ctx context.Context) (int64, error)

	SaveDailyReport(ctx context.Context, report models.DailyBalanceReport) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// EnsureIndexes creates the indexes the retrieval surface relies on. Safe to
// call on every startup.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{collMaterials, mongo.IndexModel{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique}},
		{collUsers, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{collAllocations, mongo.IndexModel{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "material_id", Value: 1}}, Options: unique}},
		{collInwards, mongo.IndexModel{Keys: bson.D{{Key: "entry_date", Value: -1}}}},
		{collOutwards, mongo.IndexModel{Keys: bson.D{{Key: "register_date", Value: -1}}}},
		{collTransfers, mongo.IndexModel{Keys: bson.D{{Key: "transfer_date", Value: -1}}}},
	}

	for _, idx := range indexes {
		if _, err := r.db.Collection(idx.coll).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll, err)
		}
	}
	return nil
}

// SaveDailyReport saves a daily balance report to the database.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyBalanceReport) error {
	collection := r.db.Collection(collDailyReports)
	_, err := collection.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to insert daily report: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
