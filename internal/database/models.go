package database

import "time"

// User represents one chat participant known to the bot. A row is created
// the first time a user interacts and is never deleted; the approved flag
// gates access to image processing.
type User struct {
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Approved  bool      `db:"approved"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
