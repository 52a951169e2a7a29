package store

import (
	"context" // Context for request-scoped DB calls
	"errors"  // Error wrapping and sentinel checks
	"strings" // Inspecting duplicate-key messages

	"plant_journal/internal/domain" // Importing domain models

	"github.com/go-sql-driver/mysql" // MySQL driver errors (duplicate keys)
	"gorm.io/gorm"                   // GORM ORM library
)

// Sentinel errors surfaced by the store
var (
	ErrNotFound          = errors.New("store: record not found")         // Lookup matched nothing
	ErrDuplicateUsername = errors.New("store: username already taken")   // Unique index on users.username hit
	ErrDuplicateEmail    = errors.New("store: email already registered") // Unique index on users.email hit
)

// Store is the persistence contract for the journal. The schema is append-only:
// there are no update or delete operations.
type Store interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id uint) (*domain.User, error)
	CreatePlant(ctx context.Context, plant *domain.Plant) error
	ListPlantsForUser(ctx context.Context, userID uint) ([]domain.Plant, error)
	FindPlantByID(ctx context.Context, id uint) (*domain.Plant, error)
	CreateEntry(ctx context.Context, entry *domain.Entry) error
	ListEntriesForPlant(ctx context.Context, plantID uint) ([]domain.Entry, error)
}

// gormStore implements Store on top of GORM/MySQL
type gormStore struct {
	db *gorm.DB // Database handle
}

// New returns a Store backed by the given GORM database handle
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// CreateUser inserts a new user row. Uniqueness of username and email is
// enforced by the database indexes, not by a pre-check, so two concurrent
// registrations can never both succeed.
func (s *gormStore) CreateUser(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateDuplicate(err) // Map duplicate-key errors to sentinels
	}
	return nil
}

// FindUserByUsername returns the user with the given username
func (s *gormStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// FindUserByID returns the user with the given id
func (s *gormStore) FindUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// CreatePlant inserts a new plant row owned by an existing user
func (s *gormStore) CreatePlant(ctx context.Context, plant *domain.Plant) error {
	return s.db.WithContext(ctx).Create(plant).Error
}

// ListPlantsForUser returns the user's plants in insertion order
func (s *gormStore) ListPlantsForUser(ctx context.Context, userID uint) ([]domain.Plant, error) {
	var plants []domain.Plant
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

// FindPlantByID returns the plant with the given id
func (s *gormStore) FindPlantByID(ctx context.Context, id uint) (*domain.Plant, error) {
	var plant domain.Plant
	if err := s.db.WithContext(ctx).First(&plant, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &plant, nil
}

// CreateEntry inserts a new journal entry row under an existing plant
func (s *gormStore) CreateEntry(ctx context.Context, entry *domain.Entry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// ListEntriesForPlant returns the plant's entries in insertion order
func (s *gormStore) ListEntriesForPlant(ctx context.Context, plantID uint) ([]domain.Entry, error) {
	var entries []domain.Entry
	if err := s.db.WithContext(ctx).Where("plant_id = ?", plantID).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// translateNotFound maps GORM's not-found error to the store sentinel
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// translateDuplicate maps MySQL duplicate-key errors (1062) to the store
// sentinels. Only the violated index name after "for key" decides the field;
// the message also embeds the duplicated value, which must not be consulted
// (a username like "emailfan" is still a username conflict).
func translateDuplicate(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		if _, key, found := strings.Cut(mysqlErr.Message, "for key"); found && strings.Contains(key, "email") {
			return ErrDuplicateEmail
		}
		return ErrDuplicateUsername
	}
	return err
}
