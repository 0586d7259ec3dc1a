package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Prediction is one recorded temperature prediction run
type Prediction struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	TempMax       float64 `json:"temp_max" gorm:"not null"`
	TempMin       float64 `json:"temp_min" gorm:"not null"`
	Lluvia        float64 `json:"lluvia" gorm:"not null"`
	Mes           int     `json:"mes" gorm:"not null"`
	PredictedTemp float64 `json:"predicted_temp" gorm:"not null"`
	FrostRisk     bool    `json:"frost_risk" gorm:"not null;default:false"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (p *Prediction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = ulid.Make().String()
	}
	return nil
}

// Store keeps a local log of prediction runs so past scenarios can be
// reviewed without re-querying the ML service.
type Store struct {
	db *gorm.DB
}

// DefaultPath returns the on-disk location of the history database
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "agreenbyte", "history.db"), nil
}

// Open opens (and migrates) the history database at the given path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&Prediction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the history database at its default location
func OpenDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Record appends a prediction run
func (s *Store) Record(p *Prediction) error {
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to record prediction: %w", err)
	}
	return nil
}

// Recent returns the most recent prediction runs, newest first
func (s *Store) Recent(limit int) ([]Prediction, error) {
	if limit <= 0 {
		limit = 20
	}

	var predictions []Prediction
	// ULIDs sort by creation time, which avoids ties on SQLite's
	// second-precision timestamps
	if err := s.db.Order("id DESC").Limit(limit).Find(&predictions).Error; err != nil {
		return nil, fmt.Errorf("failed to read prediction history: %w", err)
	}
	return predictions, nil
}
