package model

import "time"

// Category is a fixed tag classifying a help request or offer.
type Category string

const (
	CategoryShopping      Category = "shopping"
	CategoryPharmacy      Category = "pharmacy"
	CategoryRepairs       Category = "repairs"
	CategoryCommunication Category = "communication"
	CategoryWalk          Category = "walk"
	CategoryDelivery      Category = "delivery"
	CategoryOther         Category = "other"
)

// Request/offer status values. Active is the only status the bot ever
// writes; completed can only appear through out-of-band updates.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// User is a row in the users table, keyed by the Telegram user id.
// Profile fields are nullable because the platform may omit any of them.
type User struct {
	UserID    int64     `db:"user_id"`
	Username  *string   `db:"username"`
	FirstName *string   `db:"first_name"`
	LastName  *string   `db:"last_name"`
	Phone     *string   `db:"phone"`
	Latitude  *float64  `db:"latitude"`
	Longitude *float64  `db:"longitude"`
	CreatedAt time.Time `db:"created_at"`
}

// HelpRequest is a row in the help_requests table.
type HelpRequest struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Category    Category  `db:"category"`
	Description string    `db:"description"`
	Details     string    `db:"details"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

// HelpOffer has the same shape as HelpRequest but represents a
// volunteer's willingness to help.
type HelpOffer struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Category    Category  `db:"category"`
	Description string    `db:"description"`
	Details     string    `db:"details"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

// Match is a row produced by category matching queries, joined with the
// owner's first name for display.
type Match struct {
	ID          int64   `db:"id"`
	Description string  `db:"description"`
	Details     string  `db:"details"`
	FirstName   *string `db:"first_name"`
}
