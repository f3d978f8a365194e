package model

import "time"

/*

Post is a piece of content shared by a user

Id: primary key
CreatedAt: time when entity is created

AuthorID:
Author: the user who wrote the post, "belongs-to" relation
Content: post body in plain text
Image: url of an image in the object store, empty if none

Comments: ordered comments on the post, "has-many" relation. Comments are
only ever appended; they are deleted together with the post (cascade).

Read: whether the requesting user has seen the post. Not a column, filled
in from the read status store when serving the feed.
*/

type Post struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorID  string    `gorm:"index" json:"authorId"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`

	Comments []*Comment `json:"comments" gorm:"constraint:OnDelete:CASCADE;"`

	Read bool `gorm:"-" json:"read"`
}
