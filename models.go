package main

import "time"

// User is the persisted account record. Handlers convert it to a UserOut
// before it leaves the API.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:64;not null"`
	Firstname string `gorm:"size:64;not null"`
	Lastname  string `gorm:"size:64;not null"`
	Age       int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName allows explicit control (optional; defaults to "users").
func (User) TableName() string { return "users" }

// Task belongs to exactly one User. The FK constraint backs up the
// existence pre-checks in the handlers.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Priority  int       `gorm:"not null" json:"priority"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Task) TableName() string { return "tasks" }
