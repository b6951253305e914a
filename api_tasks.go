package main

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

/* ---------- Route: GET /task/ ---------- */

func (s *server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := make([]Task, 0)
	if err := s.db.Order("id").Find(&tasks).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

/* ---------- Route: GET /task/task_id?task_id= ---------- */

func (s *server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "task_id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var t Task
	err = s.db.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errorJSON(w, http.StatusNotFound, msgTaskNotFound)
		return
	} else if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

/* ---------- Route: POST /task/create?user_id= ---------- */

// A new task always starts with completed=false; the owner must exist.
func (s *server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	uid, err := queryID(r, "user_id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var in createTaskInput
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := in.validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("id = ?", uid).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errUserNotFound
		}
		t := Task{
			Title:     in.Title,
			Content:   in.Content,
			Priority:  *in.Priority,
			Completed: false,
			UserID:    uid,
		}
		return tx.Create(&t).Error
	})
	switch {
	case errors.Is(err, errUserNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated):
		errorJSON(w, http.StatusNotFound, msgUserNotFound)
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "db error")
	default:
		writeAck(w, http.StatusCreated, "Successful")
	}
}

/* ---------- Route: PUT /task/update?task_id= ---------- */

// Full replacement, completed and owner included. A replacement owner is
// checked the same way create checks it.
func (s *server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "task_id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	var in updateTaskInput
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := in.validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var t Task
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTaskNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&User{}).Where("id = ?", *in.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errUserNotFound
		}
		return tx.Model(&t).Updates(map[string]any{
			"title":     in.Title,
			"content":   in.Content,
			"priority":  *in.Priority,
			"completed": *in.Completed,
			"user_id":   *in.UserID,
		}).Error
	})
	switch {
	case errors.Is(err, errTaskNotFound):
		errorJSON(w, http.StatusNotFound, msgTaskNotFound)
	case errors.Is(err, errUserNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated):
		errorJSON(w, http.StatusNotFound, msgUserNotFound)
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "db error")
	default:
		writeAck(w, http.StatusCreated, "Successful")
	}
}

/* ---------- Route: DELETE /task/delete?task_id= ---------- */

func (s *server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "task_id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var t Task
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTaskNotFound
			}
			return err
		}
		return tx.Delete(&t).Error
	})
	switch {
	case errors.Is(err, errTaskNotFound):
		errorJSON(w, http.StatusNotFound, msgTaskNotFound)
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "db error")
	default:
		writeAck(w, http.StatusCreated, "Successful")
	}
}
