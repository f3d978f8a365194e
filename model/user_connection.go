package model

import "time"

/*

UserConnection is one direction of the symmetric connection edge

UserID: owner of the edge
ConnectionID: the user on the other end
CreatedAt: time when relation is created

A connection between A and B is stored as two rows (A,B) and (B,A). The
pair is always created and removed together inside one transaction.
*/

type UserConnection struct {
	UserID       string `gorm:"primaryKey"`
	ConnectionID string `gorm:"primaryKey"`
	CreatedAt    time.Time
}
