package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vebops/store/internal/domain/models"
)

const currentUserKey = "currentUser"

// SetCurrentUser stores the authenticated account on the request context.
func SetCurrentUser(c *gin.Context, user *models.UserAccount) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the authenticated account, or nil on public routes.
func CurrentUser(c *gin.Context) *models.UserAccount {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.UserAccount)
	return user
}

// intQuery parses a numeric query parameter. Malformed or missing values
// come back as zero; the pagination engine clamps those to its defaults.
func intQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

// projectIDQuery collects repeated ?project= parameters, dropping values
// that are not valid object ids.
func projectIDQuery(c *gin.Context) []primitive.ObjectID {
	var ids []primitive.ObjectID
	for _, raw := range c.QueryArray("project") {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
