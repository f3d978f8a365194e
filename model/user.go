package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/*

User is a registered account on the platform

Id: primary key
CreatedAt: time when entity is created
UpdatedAt: time when entity is last modified

Username: unique handle, used for login and public profile url
Email: unique contact address
Password: bcrypt hash, never serialized to the client

Name, Headline, About, Location: free-form profile text
ProfilePicture, BannerImg: urls of images stored in the object store
Skills: list of skill labels
Experience, Education: client-defined JSON documents, stored opaque

Connections: the user's mutual connections, "many-to-many" self relation
through the user_connections join table. The edge is symmetric: whenever
A lists B, B lists A. Both join rows are written inside one transaction.
*/

type User struct {
	Id             string    `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Name           string    `json:"name"`
	Username       string    `gorm:"uniqueIndex" json:"username"`
	Email          string    `gorm:"uniqueIndex" json:"email"`
	Password       string    `json:"-"`
	Headline       string    `json:"headline"`
	About          string    `json:"about"`
	Location       string    `json:"location"`
	ProfilePicture string    `json:"profilePicture"`
	BannerImg      string    `json:"bannerImg"`

	Skills     pq.StringArray `gorm:"type:text[]" json:"skills"`
	Experience datatypes.JSON `json:"experience"`
	Education  datatypes.JSON `json:"education"`

	Connections []*User `json:"connections,omitempty" gorm:"many2many:user_connections;joinForeignKey:UserID;joinReferences:ConnectionID"`
}

// IsConnectedTo reports whether other is in the user's loaded connection
// list. Connections must have been preloaded.
func (u *User) IsConnectedTo(otherId string) bool {
	for _, c := range u.Connections {
		if c.Id == otherId {
			return true
		}
	}
	return false
}
