package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// server holds the per-process capabilities handlers need. The DB session
// scope is opened per request inside each handler, never cached.
type server struct {
	db *gorm.DB
}

func newServer(db *gorm.DB) *server { return &server{db: db} }

// routes mirrors the original wire contract: resource ids travel as query
// parameters on literal paths like /user/user_id.
func (s *server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Route("/user", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Get("/user_id", s.handleGetUser)
		r.Get("/user_id/tasks", s.handleListUserTasks)
		r.Post("/create", s.handleCreateUser)
		r.Put("/update", s.handleUpdateUser)
		r.Delete("/delete", s.handleDeleteUser)
	})

	r.Route("/task", func(r chi.Router) {
		r.Get("/", s.handleListTasks)
		r.Get("/task_id", s.handleGetTask)
		r.Post("/create", s.handleCreateTask)
		r.Put("/update", s.handleUpdateTask)
		r.Delete("/delete", s.handleDeleteTask)
	})

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}

func main() {
	loadDotenv()
	cfg := loadConfig()

	dsn := cfg.DatabaseURL
	if dsn == "" {
		log.Fatal("[DB] DATABASE_URL is not set. Refusing to start.")
	}
	// local only: allow sslmode=disable if using localhost
	if strings.Contains(dsn, "localhost") && !strings.Contains(dsn, "sslmode=") {
		if strings.Contains(dsn, "?") {
			dsn += "&sslmode=disable"
		} else {
			dsn += "?sslmode=disable"
		}
	}

	// Quieter GORM logger
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold: 1500 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := openGorm(dsn, gLogger)
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	log.Println("[DB] connected")
	if err := autoMigrate(db); err != nil {
		log.Fatalf("[DB] migrate failed: %v", err)
	}

	s := newServer(db)

	// ---- Router & middleware
	r := chi.NewRouter()

	// allow comma-separated list of origins
	var origins []string
	for _, p := range strings.Split(cfg.CORSOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Finish bare OPTIONS quickly
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Mount("/", s.routes())

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("API listening on", addr, "CORS_ORIGIN:", cfg.CORSOrigin)
	log.Fatal(srv.ListenAndServe())
}
