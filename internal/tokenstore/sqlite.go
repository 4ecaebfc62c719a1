package tokenstore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const nameQueryPattern = "name = ?"

// Slot is one stored value of the SQLite store.
type Slot struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Value     string
	UpdatedAt time.Time
}

// TableName implements gorm's tabler.
func (Slot) TableName() string { return "token_slots" }

// SQLite keeps values in a local SQLite database through gorm.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens or creates the SQLite database at path.
func NewSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
			return nil, errors.Wrap(err, "failed to create token store directory")
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open token store database")
	}

	return NewSQLiteWithDB(db)
}

// NewSQLiteWithDB uses an already opened gorm database and migrates the slot table.
func NewSQLiteWithDB(db *gorm.DB) (*SQLite, error) {
	if db == nil {
		return nil, errors.New("token store database can not be nil")
	}

	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate token store database")
	}

	return &SQLite{db: db}, nil
}

// Get implements Store.
func (s *SQLite) Get(key string) (string, error) {
	if key == "" {
		return "", ErrKeyEmpty
	}

	var slot Slot

	result := s.db.Where(nameQueryPattern, key).First(&slot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", errors.Wrap(result.Error, "failed to read token slot")
	}

	return slot.Value, nil
}

// Set implements Store.
func (s *SQLite) Set(key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var slot Slot

		result := tx.Where(nameQueryPattern, key).First(&slot)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return errors.Wrap(tx.Create(&Slot{Name: key, Value: value}).Error, "failed to create token slot")
		}

		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to read token slot")
		}

		slot.Value = value

		return errors.Wrap(tx.Save(&slot).Error, "failed to update token slot")
	})
}

// Remove implements Store.
func (s *SQLite) Remove(key string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	result := s.db.Where(nameQueryPattern, key).Delete(&Slot{})

	return errors.Wrap(result.Error, "failed to delete token slot")
}

// Close implements Store.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access token store database")
	}

	return errors.Wrap(sqlDB.Close(), "failed to close token store database")
}
