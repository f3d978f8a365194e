package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unlinked-app/unlinked/model"
	"github.com/unlinked-app/unlinked/utils"
)

const tinyPngDataUri = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

func TestGetSuggestedConnections(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	ts := prepareTestServer(t, db)

	annId, annCookies := signupUser(t, db, ts.Router, "Ann", "ann1")
	bobId, bobCookies := signupUser(t, db, ts.Router, "Bob", "bob1")
	for _, u := range []struct{ name, username string }{
		{"Carl", "carl1"}, {"Dora", "dora1"}, {"Eve", "eve1"}, {"Finn", "finn1"},
	} {
		signupUser(t, db, ts.Router, u.name, u.username)
	}
	connectUsers(t, db, ts.Router, annId, annCookies, bobId, bobCookies)

	resp := doJSON(t, ts.Router, http.MethodGet, "/users/suggestions", nil, annCookies)
	require.Equal(t, http.StatusOK, resp.Code)

	var suggested []model.User
	decodeBody(t, resp, &suggested)
	require.Len(t, suggested, 3)
	for _, s := range suggested {
		require.NotEqual(t, annId, s.Id)
		require.NotEqual(t, bobId, s.Id)
		// Card fields only.
		require.NotEmpty(t, s.Name)
		require.Empty(t, s.Email)
	}
}

func TestGetPublicProfile(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	ts := prepareTestServer(t, db)

	_, annCookies := signupUser(t, db, ts.Router, "Ann", "ann1")
	signupUser(t, db, ts.Router, "Bob", "bob1")

	t.Run("found", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodGet, "/users/bob1", nil, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var profile map[string]interface{}
		decodeBody(t, resp, &profile)
		require.Equal(t, "Bob", profile["name"])
		require.NotContains(t, resp.Body.String(), "password")
	})

	t.Run("unknown username", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodGet, "/users/nobody", nil, annCookies)
		require.Equal(t, http.StatusNotFound, resp.Code)
		require.Contains(t, resp.Body.String(), "User not found")
	})
}

func TestUpdateProfile(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	ts := prepareTestServer(t, db)

	annId, annCookies := signupUser(t, db, ts.Router, "Ann", "ann1")

	t.Run("provided fields overwrite, absent fields stay", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPut, "/users/profile", map[string]interface{}{
			"headline": "Gopher",
			"about":    "I write servers.",
			"skills":   []string{"go", "sql"},
		}, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		resp = doJSON(t, ts.Router, http.MethodPut, "/users/profile", map[string]interface{}{
			"location": "Berlin",
		}, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var user model.User
		db.Where("id = ?", annId).First(&user)
		require.Equal(t, "Gopher", user.Headline)
		require.Equal(t, "I write servers.", user.About)
		require.Equal(t, "Berlin", user.Location)
		require.Equal(t, []string{"go", "sql"}, []string(user.Skills))
		require.Equal(t, "Ann", user.Name)
	})

	t.Run("explicit empty clears", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPut, "/users/profile", map[string]interface{}{
			"headline": "",
			"skills":   []string{},
		}, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var user model.User
		db.Where("id = ?", annId).First(&user)
		require.Empty(t, user.Headline)
		require.Empty(t, []string(user.Skills))
		require.Equal(t, "Berlin", user.Location)
	})

	t.Run("data uri images are uploaded and replaced with urls", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPut, "/users/profile", map[string]interface{}{
			"profilePicture": tinyPngDataUri,
		}, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Len(t, ts.Images.Stored, 1)

		var user model.User
		db.Where("id = ?", annId).First(&user)
		require.Equal(t, "https://images.test/fake-key-0", user.ProfilePicture)
	})

	t.Run("plain urls pass through untouched", func(t *testing.T) {
		resp := doJSON(t, ts.Router, http.MethodPut, "/users/profile", map[string]interface{}{
			"bannerImg": "https://elsewhere.test/banner.png",
		}, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Len(t, ts.Images.Stored, 1)

		var user model.User
		db.Where("id = ?", annId).First(&user)
		require.Equal(t, "https://elsewhere.test/banner.png", user.BannerImg)
	})

	t.Run("password is not an updatable field", func(t *testing.T) {
		var before model.User
		db.Where("id = ?", annId).First(&before)

		resp := doJSON(t, ts.Router, http.MethodPut, "/users/profile", map[string]interface{}{
			"password": "hacked",
		}, annCookies)
		require.Equal(t, http.StatusOK, resp.Code)

		var after model.User
		db.Where("id = ?", annId).First(&after)
		require.Equal(t, before.Password, after.Password)
	})
}
