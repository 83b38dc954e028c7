package models

import "time"

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Token        string
}

// Posting is immutable once stored. Salary and PublishedBy are nil when absent.
type Posting struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Contact     string    `json:"contact"`
	Salary      *string   `json:"salary"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	PublishedBy *int64    `json:"published_by"`
}

// Application is kept in the schema only; no operation reads or writes it.
type Application struct {
	ID        int64
	UserID    int64
	PostingID int64
	Message   string
	CreatedAt time.Time
}
