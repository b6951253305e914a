package main

import (
	"errors"
	"strings"
)

// One input struct per endpoint so a malformed body is rejected before any
// DB work. Numeric and boolean required fields are pointers: a missing field
// and a zero value are different things.

type createUserInput struct {
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Age       *int   `json:"age"`
}

func (in *createUserInput) validate() error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return errors.New("username is required")
	case strings.TrimSpace(in.Firstname) == "":
		return errors.New("firstname is required")
	case strings.TrimSpace(in.Lastname) == "":
		return errors.New("lastname is required")
	case in.Age == nil:
		return errors.New("age is required")
	case *in.Age <= 0:
		return errors.New("age must be positive")
	}
	return nil
}

type updateUserInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Age       *int   `json:"age"`
}

func (in *updateUserInput) validate() error {
	switch {
	case strings.TrimSpace(in.Firstname) == "":
		return errors.New("firstname is required")
	case strings.TrimSpace(in.Lastname) == "":
		return errors.New("lastname is required")
	case in.Age == nil:
		return errors.New("age is required")
	case *in.Age <= 0:
		return errors.New("age must be positive")
	}
	return nil
}

// createTaskInput deliberately has no completed field; a new task always
// starts ungraded regardless of what the body carries.
type createTaskInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority *int   `json:"priority"`
}

func (in *createTaskInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return errors.New("title is required")
	case strings.TrimSpace(in.Content) == "":
		return errors.New("content is required")
	case in.Priority == nil:
		return errors.New("priority is required")
	}
	return nil
}

// updateTaskInput is a full replacement, completed and owner included.
type updateTaskInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Priority  *int   `json:"priority"`
	Completed *bool  `json:"completed"`
	UserID    *uint  `json:"user_id"`
}

func (in *updateTaskInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return errors.New("title is required")
	case strings.TrimSpace(in.Content) == "":
		return errors.New("content is required")
	case in.Priority == nil:
		return errors.New("priority is required")
	case in.Completed == nil:
		return errors.New("completed is required")
	case in.UserID == nil || *in.UserID == 0:
		return errors.New("user_id is required")
	}
	return nil
}

// UserOut is the public projection of a User; timestamps stay internal.
type UserOut struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Age       int    `json:"age"`
}

func toUserOut(u User) UserOut {
	return UserOut{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Age:       u.Age,
	}
}

// ack is the minimal success body every write endpoint returns.
type ack struct {
	StatusCode  int    `json:"status_code"`
	Transaction string `json:"transaction"`
}
