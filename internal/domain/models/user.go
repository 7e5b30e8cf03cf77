package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a user's functional role.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleStorekeeper Role = "STOREKEEPER"
	RoleViewer      Role = "VIEWER"
)

// AccessType is a user's project visibility scope.
type AccessType string

const (
	// AccessAll grants visibility over every project regardless of the
	// assignment list.
	AccessAll AccessType = "ALL"
	// AccessProjects restricts visibility to the explicitly assigned set.
	AccessProjects AccessType = "PROJECTS"
)

// UserAccount is an authenticated identity with a visibility scope.
type UserAccount struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email        string               `bson:"email" json:"email"`
	Name         string               `bson:"name" json:"name"`
	PasswordHash string               `bson:"password_hash" json:"-"`
	Role         Role                 `bson:"role" json:"role"`
	AccessType   AccessType           `bson:"access_type" json:"access_type"`
	ProjectIDs   []primitive.ObjectID `bson:"project_ids" json:"project_ids"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
}

// CanWrite reports whether the role may record movements and master data.
func (u *UserAccount) CanWrite() bool {
	return u.Role == RoleAdmin || u.Role == RoleStorekeeper
}
