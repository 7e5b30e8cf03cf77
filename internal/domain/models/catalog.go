package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a construction site/project. Movements hold a reference to it,
// never a copy, so a project must not be deleted once referenced.
type Project struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Material is a catalog entry referenced by movements and allocations.
// The code is unique; materials are never duplicated by code.
type Material struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code       string             `bson:"code" json:"code"`
	Name       string             `bson:"name" json:"name"`
	PartNumber string             `bson:"part_number" json:"part_number"`
	Unit       string             `bson:"unit" json:"unit"`
	Category   string             `bson:"category" json:"category"`
	LineType   string             `bson:"line_type" json:"line_type"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Allocation is a BOM line: the planned quantity of a material for a project.
// At most one allocation exists per (project, material); later submissions
// replace the required quantity.
type Allocation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID   primitive.ObjectID `bson:"project_id" json:"project_id"`
	MaterialID  primitive.ObjectID `bson:"material_id" json:"material_id"`
	RequiredQty Quantity           `bson:"required_qty" json:"required_qty"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
