// Package access resolves which projects a user account may see. It is a
// pure lookup: callers must already hold an authenticated user, and an empty
// result means "no visible records", never "unrestricted".
package access

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vebops/store/internal/domain/models"
)

// ProjectSet is a set of visible project identifiers.
type ProjectSet map[primitive.ObjectID]struct{}

// Contains reports whether the project id is in the set.
func (s ProjectSet) Contains(id primitive.ObjectID) bool {
	_, ok := s[id]
	return ok
}

// VisibleProjects returns the projects the user may see. AccessAll grants
// every project in the system regardless of the assignment list; otherwise
// only the explicitly assigned projects are visible.
func VisibleProjects(user *models.UserAccount, allProjects []models.Project) ProjectSet {
	set := ProjectSet{}
	if user == nil {
		return set
	}

	if user.AccessType == models.AccessAll {
		for _, p := range allProjects {
			set[p.ID] = struct{}{}
		}
		return set
	}

	for _, id := range user.ProjectIDs {
		set[id] = struct{}{}
	}
	return set
}

// Restrict intersects the visible set with a caller-supplied project filter.
// An empty filter leaves the set untouched; a filter naming an invisible
// project simply contributes nothing.
func (s ProjectSet) Restrict(filter []primitive.ObjectID) ProjectSet {
	if len(filter) == 0 {
		return s
	}

	restricted := ProjectSet{}
	for _, id := range filter {
		if s.Contains(id) {
			restricted[id] = struct{}{}
		}
	}
	return restricted
}
