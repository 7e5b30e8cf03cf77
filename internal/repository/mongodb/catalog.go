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

// ListProjects returns every project, oldest first.
func (r *MongoDBRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.db.Collection(collProjects).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// InsertProject appends a new project and returns it with its generated id.
func (r *MongoDBRepository) InsertProject(ctx context.Context, project models.Project) (models.Project, error) {
	project.ID = primitive.NewObjectID()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.Collection(collProjects).InsertOne(ctx, project); err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return project, nil
}

// ListMaterials returns the full material catalog sorted by code.
func (r *MongoDBRepository) ListMaterials(ctx context.Context) ([]models.Material, error) {
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := r.db.Collection(collMaterials).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	var materials []models.Material
	if err := cursor.All(ctx, &materials); err != nil {
		return nil, fmt.Errorf("decode materials: %w", err)
	}
	return materials, nil
}

// FindMaterialByCode returns the material with the given unique code, or nil
// when no such material exists.
func (r *MongoDBRepository) FindMaterialByCode(ctx context.Context, code string) (*models.Material, error) {
	var material models.Material
	err := r.db.Collection(collMaterials).FindOne(ctx, bson.D{{Key: "code", Value: code}}).Decode(&material)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find material by code %s: %w", code, err)
	}
	return &material, nil
}

// InsertMaterial appends a new material and returns it with its generated id.
func (r *MongoDBRepository) InsertMaterial(ctx context.Context, material models.Material) (models.Material, error) {
	material.ID = primitive.NewObjectID()
	if material.CreatedAt.IsZero() {
		material.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.Collection(collMaterials).InsertOne(ctx, material); err != nil {
		return models.Material{}, fmt.Errorf("insert material: %w", err)
	}
	return material, nil
}

// ListAllocations returns every BOM line.
func (r *MongoDBRepository) ListAllocations(ctx context.Context) ([]models.Allocation, error) {
	cursor, err := r.db.Collection(collAllocations).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}

	var allocations []models.Allocation
	if err := cursor.All(ctx, &allocations); err != nil {
		return nil, fmt.Errorf("decode allocations: %w", err)
	}
	return allocations, nil
}

// UpsertAllocation writes a BOM line keyed by (project, material). A repeat
// submission replaces the required quantity, it does not accumulate.
func (r *MongoDBRepository) UpsertAllocation(ctx context.Context, allocation models.Allocation) error {
	filter := bson.D{
		{Key: "project_id", Value: allocation.ProjectID},
		{Key: "material_id", Value: allocation.MaterialID},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "required_qty", Value: allocation.RequiredQty},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	opts := options.Update().SetUpsert(true)
	if _, err := r.db.Collection(collAllocations).UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert allocation: %w", err)
	}
	return nil
}
