package config

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the live database connections. Mongo carries the content
// collections (posts, categories, events); Postgres carries the relational
// side tables (subscribers, contact messages).
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
}

// ConnManager owns the lifecycle of the shared database connections.
// Connections are created lazily on Init and reused across requests; Reset
// tears them down so the next Init reconnects (warm-restart and test reuse).
type ConnManager struct {
	mu  sync.Mutex
	cfg *Config
	db  *DB
}

// NewConnManager creates an uninitialized connection manager.
func NewConnManager(cfg *Config) *ConnManager {
	return &ConnManager{cfg: cfg}
}

// Init establishes the Mongo and Postgres connections if not already up.
// Safe to call more than once; subsequent calls return the cached handle.
func (m *ConnManager) Init(ctx context.Context) (*DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	if m.cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}
	if m.cfg.PostgresConnStr == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}

	mongoClient, err := connectMongo(ctx, m.cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	postgresDB, err := connectPostgres(m.cfg.PostgresConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	m.db = &DB{Postgres: postgresDB, Mongo: mongoClient}
	return m.db, nil
}

// Get returns the current connections, or an error when Init has not run.
func (m *ConnManager) Get() (*DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil, fmt.Errorf("database connections not initialized")
	}
	return m.db, nil
}

// Reset closes the current connections and clears the cached handle.
func (m *ConnManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db != nil {
		m.db.Close()
		m.db = nil
	}
}

// connectMongo initializes the MongoDB connection with a bounded pool.
func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMaxConnIdleTime(5 * time.Minute).
		SetTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return client, nil
}

// connectPostgres initializes the PostgreSQL connection using GORM.
func connectPostgres(connStr string) (*gorm.DB, error) {
	// TranslateError maps driver errors (unique violations in particular) to
	// gorm's sentinel errors, which the repositories match on.
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL!")
	return db, nil
}

// Close closes the database connections.
func (db *DB) Close() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			log.Printf("Error getting SQL DB from GORM: %v\n", err)
		} else {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Error closing PostgreSQL connection: %v\n", err)
			} else {
				log.Println("PostgreSQL connection closed.")
			}
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v\n", err)
		} else {
			log.Println("MongoDB connection closed.")
		}
	}
}
