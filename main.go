package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nvoronin/portfolio-backend/api"
	"github.com/nvoronin/portfolio-backend/config"
	"github.com/nvoronin/portfolio-backend/database"
	"github.com/nvoronin/portfolio-backend/media"
	"github.com/nvoronin/portfolio-backend/models"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var db *gorm.DB
	var err error

	dbType := config.GetString(c, "DB_TYPE", "postgres")
	fmt.Printf("DB_TYPE: %s\n", dbType)
	switch dbType {
	case "postgres":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "portfolio"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "portfolio"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "require"),
		)
		fmt.Println("Connecting to Postgres database...")
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			Logger:      newLogger,
		})
	case "sqlite":
		path := config.GetString(c, "DB_PATH", "portfolio.db")
		fmt.Printf("Opening SQLite database at %s...\n", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newLogger})
	default:
		fmt.Println("Unsupported DB_TYPE. Exiting...")
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := models.AutoMigrate(db); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	store, err := newMediaStore(c)
	if err != nil {
		fmt.Printf("Error initializing media store: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db, store)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, store)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newMediaStore builds the content store for preview images from explicit
// configuration: "s3" in production, "fs" for local development.
func newMediaStore(c map[string]string) (media.Store, error) {
	cfg := media.Config{
		Driver:    config.GetString(c, "MEDIA_DRIVER", "fs"),
		Bucket:    config.GetString(c, "MEDIA_BUCKET", ""),
		Region:    config.GetString(c, "MEDIA_REGION", "us-east-1"),
		Endpoint:  config.GetString(c, "MEDIA_ENDPOINT", ""),
		AccessKey: config.GetString(c, "MEDIA_ACCESS_KEY", ""),
		SecretKey: config.GetString(c, "MEDIA_SECRET_KEY", ""),
		PublicURL: config.GetString(c, "MEDIA_PUBLIC_URL", ""),
		Root:      config.GetString(c, "MEDIA_ROOT", "media"),
	}

	switch cfg.Driver {
	case "s3":
		return media.NewS3Store(context.Background(), cfg)
	case "fs":
		return media.NewFSStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported MEDIA_DRIVER %q", cfg.Driver)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
