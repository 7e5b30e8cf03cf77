package catalog

import (
	"context"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vebops/store/internal/domain/models"
)

func TestMaterialsFiltersAndOptions(t *testing.T) {
	repo := &fakeRepo{
		materials: []models.Material{
			{ID: primitive.NewObjectID(), Code: "CEM-001", Name: "OPC Cement", Unit: "bag", Category: "Cement", LineType: "CONSUMABLE"},
			{ID: primitive.NewObjectID(), Code: "STL-010", Name: "Rebar 12mm", Unit: "ton", Category: "Steel", LineType: "BULK"},
			{ID: primitive.NewObjectID(), Code: "STL-020", Name: "Rebar 16mm", Unit: "ton", Category: "Steel", LineType: "BULK"},
		},
	}
	svc := NewService(repo, nil)

	page, err := svc.Materials(context.Background(), MaterialQuery{
		Categories: []string{"steel"},
		Search:     "16mm",
	})
	if err != nil {
		t.Fatalf("Materials: %v", err)
	}

	if page.TotalItems != 1 || page.Items[0].Code != "STL-020" {
		t.Fatalf("filters must combine with AND, got %+v", page.Items)
	}

	categories, ok := page.Extra["categories"].([]string)
	if !ok || !reflect.DeepEqual(categories, []string{"Cement", "Steel"}) {
		t.Fatalf("option list must cover the whole catalog, got %v", page.Extra["categories"])
	}
	units, ok := page.Extra["units"].([]string)
	if !ok || !reflect.DeepEqual(units, []string{"bag", "ton"}) {
		t.Fatalf("unit options = %v", page.Extra["units"])
	}
}

func TestProjectsVisibleOnly(t *testing.T) {
	projectA := models.Project{ID: primitive.NewObjectID(), Code: "PRJ-A", Name: "Site A"}
	projectB := models.Project{ID: primitive.NewObjectID(), Code: "PRJ-B", Name: "Site B"}
	repo := &fakeRepo{projects: []models.Project{projectA, projectB}}
	svc := NewService(repo, nil)

	viewer := &models.UserAccount{
		AccessType: models.AccessProjects,
		ProjectIDs: []primitive.ObjectID{projectB.ID},
	}

	page, err := svc.Projects(context.Background(), viewer, 1, 10)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].Code != "PRJ-B" {
		t.Fatalf("only the assigned project should list, got %+v", page.Items)
	}

	admin := &models.UserAccount{AccessType: models.AccessAll}
	page, err = svc.Projects(context.Background(), admin, 1, 10)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if page.TotalItems != 2 {
		t.Fatalf("ALL access should list every project, got %d", page.TotalItems)
	}
}

func TestUsersFilter(t *testing.T) {
	repo := &fakeRepo{
		users: []models.UserAccount{
			{ID: primitive.NewObjectID(), Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin, AccessType: models.AccessAll},
			{ID: primitive.NewObjectID(), Email: "keeper@example.com", Name: "Keeper", Role: models.RoleStorekeeper, AccessType: models.AccessProjects},
			{ID: primitive.NewObjectID(), Email: "viewer@example.com", Name: "Viewer", Role: models.RoleViewer, AccessType: models.AccessProjects},
		},
	}
	svc := NewService(repo, nil)

	page, err := svc.Users(context.Background(), UserQuery{Roles: []string{"STOREKEEPER"}})
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].Email != "keeper@example.com" {
		t.Fatalf("role filter failed: %+v", page.Items)
	}

	page, err = svc.Users(context.Background(), UserQuery{Search: "viewer"})
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].Role != models.RoleViewer {
		t.Fatalf("search filter failed: %+v", page.Items)
	}

	roles, ok := page.Extra["roles"].([]string)
	if !ok || len(roles) != 3 {
		t.Fatalf("role options must cover all accounts, got %v", page.Extra["roles"])
	}
}
