package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/logger"
)

// MyServer holds the shared dependencies of the route handlers.
type MyServer struct {
	DB    *database.DBinstanceStruct
	Redis *database.RedisClient
	Log   *zap.Logger
}

// NewServer construct new http.Server instance wired to the database, the
// optional redis cache and the route handlers.
func NewServer() (*http.Server, error) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	db, err := database.GetMainDB()
	if err != nil {
		return nil, fmt.Errorf("database failed to initialize: %w", err)
	}

	rdb := database.NewRedis()
	if rdb == nil {
		log.Warn("redis not configured, leaderboard served from database only")
	}

	s := &MyServer{
		DB:    db,
		Redis: rdb,
		Log:   log,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}
