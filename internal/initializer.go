package internal

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"

	"red-social-api/internal/config"
	"red-social-api/internal/managers"
	"red-social-api/internal/migrations"
	"red-social-api/internal/routing"
)

func Init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	setLogLevel(cfg.LogLevel)

	// Bring the schema up to date before anything touches the pool
	runMigrations(cfg)

	// Connect to database
	pool := initializeDatabase(cfg)
	defer pool.Close()

	// Initialize database manager
	databaseMgr := managers.NewDatabaseManager(pool)

	// Initialize mail manager
	mailMgr := managers.NewMailManager(cfg)

	// Initialize storage manager
	storageMgr, err := managers.NewStorageManager(cfg)
	if err != nil {
		log.Fatal("Error initializing storage manager: ", err)
	}

	// Initialize JWT manager
	jwtMgr := managers.NewJWTManager(cfg.JWTSecret, cfg.JWTLifetime)

	// Initialize router
	r := routing.InitRouter(databaseMgr, mailMgr, storageMgr, jwtMgr, cfg)
	log.Println("Initialized router")

	// Handle interrupt signal gracefully
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)

		<-c
		log.Println("Server shutting down...")
		os.Exit(0)
	}()

	// Start server on the configured address
	log.Printf("Starting server on %s...\n", cfg.HTTPAddr)
	err = http.ListenAndServe(cfg.HTTPAddr, r)
	if err != nil {
		log.Fatal("Error starting server: ", err)
	}
}

func initializeDatabase(cfg *config.Config) *pgxpool.Pool {
	log.Info("Initializing database")

	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
		log.Fatal("database environment variables not set")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("error configuring database: ", err)
	}

	poolConfig.MinConns = 5
	poolConfig.MaxConns = 30
	poolConfig.MaxConnIdleTime = time.Minute * 2
	poolConfig.HealthCheckPeriod = time.Minute * 1

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	log.Info("Connected to database")
	return pool
}

func runMigrations(cfg *config.Config) {
	log.Info("Running database migrations")

	db, err := sql.Open("pgx", cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("error opening migration connection: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warning("error closing migration connection: ", err)
		}
	}()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("error setting migration dialect: ", err)
	}
	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		log.Fatal("error running migrations: ", err)
	}
	log.Info("Database schema up to date")
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetReportCaller(true)

	log.SetOutput(os.Stdout)
}
