package main

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

const (
	msgUserNotFound = "User was not found"
	msgTaskNotFound = "Task was not found"
)

// Sentinel results for check-then-write transactions. The DB-level unique
// index and FK constraint catch whatever slips between check and write.
var (
	errUserNotFound  = errors.New("user not found")
	errTaskNotFound  = errors.New("task not found")
	errUsernameTaken = errors.New("username taken")
)

/* ---------- Route: GET /user/ ---------- */

func (s *server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	var users []User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	out := make([]UserOut, 0, len(users))
	for _, u := range users {
		out = append(out, toUserOut(u))
	}
	writeJSON(w, http.StatusOK, out)
}

/* ---------- Route: GET /user/user_id?user_id= ---------- */

func (s *server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "user_id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var u User
	err = s.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errorJSON(w, http.StatusNotFound, msgUserNotFound)
		return
	} else if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, toUserOut(u))
}

/* ---------- Route: GET /user/user_id/tasks?user_id= ---------- */

// Unknown users get a 404 here; an existing user with no tasks gets [].
func (s *server) handleListUserTasks(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "user_id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var count int64
	if err := s.db.Model(&User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if count == 0 {
		errorJSON(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	tasks := make([]Task, 0)
	if err := s.db.Where("user_id = ?", id).Order("id").Find(&tasks).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

/* ---------- Route: POST /user/create ---------- */

func (s *server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in createUserInput
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := in.validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	username := strings.TrimSpace(in.Username)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errUsernameTaken
		}
		u := User{
			Username:  username,
			Firstname: in.Firstname,
			Lastname:  in.Lastname,
			Age:       *in.Age,
		}
		return tx.Create(&u).Error
	})
	switch {
	case errors.Is(err, errUsernameTaken) || errors.Is(err, gorm.ErrDuplicatedKey):
		errorJSON(w, http.StatusBadRequest, "User "+username+" already exist")
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "db error")
	default:
		writeAck(w, http.StatusCreated, "Successful")
	}
}

/* ---------- Route: PUT /user/update?user_id= ---------- */

// Overwrites the three mutable fields; username is immutable post-creation.
func (s *server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "user_id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var in updateUserInput
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := in.validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var u User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		return tx.Model(&u).Updates(map[string]any{
			"firstname": in.Firstname,
			"lastname":  in.Lastname,
			"age":       *in.Age,
		}).Error
	})
	switch {
	case errors.Is(err, errUserNotFound):
		errorJSON(w, http.StatusNotFound, msgUserNotFound)
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "db error")
	default:
		writeAck(w, http.StatusOK, "User update is successful!")
	}
}

/* ---------- Route: DELETE /user/delete?user_id= ---------- */

// Cascade: the user row and every task owned by it go in one transaction.
func (s *server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "user_id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var u User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
	switch {
	case errors.Is(err, errUserNotFound):
		errorJSON(w, http.StatusNotFound, msgUserNotFound)
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "db error")
	default:
		writeAck(w, http.StatusOK, "User delete is successful!")
	}
}
