package middlewares

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/unlinked-app/unlinked/model"
	"github.com/unlinked-app/unlinked/utils/dotenv"
	Logger "github.com/unlinked-app/unlinked/utils/log"
	"gorm.io/gorm"
)

const (
	// SessionCookieName carries the signed session token. The cookie is
	// http-only and same-site strict, the client never reads it.
	SessionCookieName = "jwt-unlinked"

	// SessionDuration is the fixed lifetime of a session token.
	SessionDuration = 3 * 24 * time.Hour
)

var (
	// jwtSecret signs and verifies session tokens. Set via Setup() before
	// any route is served.
	jwtSecret []byte
)

// Setup initialized all package scoped variables that are needed to perform
// middleware functionalities. This function must be called before any
// middleware is used.
func Setup() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Abort directly, serving sessions with an empty signing key would
		// make every forged token valid.
		Logger.Log.Fatalln("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// IssueSessionToken signs a session token for the given user id with the
// fixed 3 day expiry.
func IssueSessionToken(userId string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userId,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionDuration)),
	})
	return token.SignedString(jwtSecret)
}

// parseSessionToken verifies the signature and expiry of a session token and
// returns the user id it was issued for.
func parseSessionToken(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid session token")
	}
	return claims.Subject, nil
}

// SetSessionCookie attaches a fresh session cookie to the response.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, int(SessionDuration.Seconds()), "/", "", dotenv.IsProdEnv(), true)
}

// ClearSessionCookie expires the session cookie unconditionally.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", dotenv.IsProdEnv(), true)
}

// RequireSession verifies the session cookie, loads the authenticated user
// (with connections) and hands it to the wrapped handler as an explicit
// argument. Absence or invalidity of the session yields 401 uniformly.
func RequireSession(db *gorm.DB, h func(c *gin.Context, user *model.User)) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - No Token Provided"})
			return
		}

		userId, err := parseSessionToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - Invalid Token"})
			return
		}

		var user model.User
		result := db.Preload("Connections").Where("id = ?", userId).First(&user)
		if result.RowsAffected != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - User Not Found"})
			return
		}

		h(c, &user)
	}
}
