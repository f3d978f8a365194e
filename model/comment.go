package model

import "time"

/*

Comment is a single comment on a post

Id: primary key
CreatedAt: time when entity is created

PostID: the post this comment belongs to
UserID:
User: the commenter, "belongs-to" relation
Content: comment body in plain text
*/

type Comment struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	PostID    string    `gorm:"index" json:"postId"`
	UserID    string    `json:"userId"`
	User      User      `json:"user"`
	Content   string    `json:"content"`
}
