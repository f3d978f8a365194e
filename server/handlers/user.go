package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/lib/pq"
	"github.com/unlinked-app/unlinked/model"
	"gorm.io/datatypes"
)

const suggestedConnectionsLimit = 3

// updateProfileInput is the allow-list of profile fields a user may change.
// Pointer fields distinguish "not provided" (nil, left untouched) from an
// explicit empty value, which clears the column.
type updateProfileInput struct {
	Name           *string         `json:"name"`
	Username       *string         `json:"username"`
	Headline       *string         `json:"headline"`
	About          *string         `json:"about"`
	Location       *string         `json:"location"`
	ProfilePicture *string         `json:"profilePicture"`
	BannerImg      *string         `json:"bannerImg"`
	Skills         *[]string       `json:"skills"`
	Experience     *datatypes.JSON `json:"experience"`
	Education      *datatypes.JSON `json:"education"`
}

// GetSuggestedConnections returns up to 3 users the caller is not yet
// connected to, in the store's natural order.
func (h *Handler) GetSuggestedConnections(c *gin.Context, user *model.User) {
	exclude := []string{user.Id}
	for _, conn := range user.Connections {
		exclude = append(exclude, conn.Id)
	}

	var suggested []model.User
	if err := h.DB.
		Select("id", "name", "username", "profile_picture", "headline").
		Where("id NOT IN ?", exclude).
		Limit(suggestedConnectionsLimit).
		Find(&suggested).Error; err != nil {
		internalError(c, "GetSuggestedConnections", err)
		return
	}

	c.JSON(http.StatusOK, suggested)
}

// GetPublicProfile serves a profile by username. The password hash is never
// serialized.
func (h *Handler) GetPublicProfile(c *gin.Context, user *model.User) {
	var profile model.User
	result := h.DB.Where("username = ?", c.Param("username")).First(&profile)
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, &profile)
}

// uploadIfDataUri replaces an inline base64 image with the url of its
// uploaded copy. Plain urls (e.g. the already stored one) pass through.
func (h *Handler) uploadIfDataUri(image *string) error {
	if image == nil || !strings.HasPrefix(*image, "data:") {
		return nil
	}
	key, err := h.Images.StoreEncoded(*image)
	if err != nil {
		return err
	}
	*image = h.Images.GetUrlFromKey(key)
	return nil
}

// UpdateProfile applies the allow-listed fields from the request body onto
// the caller's profile. Image fields are uploaded to the object store first
// and replaced with the returned url before persisting.
func (h *Handler) UpdateProfile(c *gin.Context, user *model.User) {
	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.uploadIfDataUri(input.ProfilePicture); err != nil {
		internalError(c, "UpdateProfile", err)
		return
	}
	if err := h.uploadIfDataUri(input.BannerImg); err != nil {
		internalError(c, "UpdateProfile", err)
		return
	}

	// Nil pointers are zero for copier and stay untouched, everything else
	// overwrites the current value.
	if err := copier.CopyWithOption(user, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		internalError(c, "UpdateProfile", err)
		return
	}
	if input.Skills != nil {
		user.Skills = pq.StringArray(*input.Skills)
	}

	if err := h.DB.Omit("Connections").Save(user).Error; err != nil {
		internalError(c, "UpdateProfile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
