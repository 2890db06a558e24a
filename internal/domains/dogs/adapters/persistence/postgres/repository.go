package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Seeder     = (*Repository)(nil)
)

// Repository reads dogs from PostgreSQL using GORM-mapped columns.
// Schema creation lives in internal/platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type breedRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name"`
}

func (breedRecord) TableName() string { return "breeds" }

type dogRecord struct {
	ID      int64  `gorm:"primaryKey;column:id;autoIncrement:false"`
	Name    string `gorm:"column:name"`
	BreedID int64  `gorm:"column:breed_id"`
	Status  string `gorm:"column:status"`
}

func (dogRecord) TableName() string { return "dogs" }

// dogRow is the joined projection of dogs and breeds.
type dogRow struct {
	ID     int64
	Name   string
	Breed  string
	Status string
}

// List returns every dog ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Dog, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []dogRow
	if err := r.joined(ctx).Order("dogs.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rowsToDomain(rows)
}

// GetByID fetches a dog by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Dog, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []dogRow
	if err := r.joined(ctx).Where("dogs.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	return rows[0].toDomain()
}

// Insert stores dogs in one transaction, creating breed rows on demand.
func (r *Repository) Insert(ctx context.Context, dogs ...*domain.Dog) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		breedIDs := map[string]int64{}
		for _, dog := range dogs {
			if dog == nil {
				return errors.New("cannot insert nil dog")
			}
			if !dog.Status.Valid() {
				return fmt.Errorf("dog %d: %w", dog.ID, domain.ErrUnknownStatus)
			}
			var existing int64
			if err := tx.Model(&dogRecord{}).Where("id = ?", dog.ID).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return fmt.Errorf("%w: %d", ports.ErrDuplicateID, dog.ID)
			}
			breedID, ok := breedIDs[dog.Breed]
			if !ok {
				breed := breedRecord{Name: dog.Breed}
				if err := tx.Where("name = ?", dog.Breed).FirstOrCreate(&breed).Error; err != nil {
					return err
				}
				breedID = breed.ID
				breedIDs[dog.Breed] = breedID
			}
			record := dogRecord{ID: dog.ID, Name: dog.Name, BreedID: breedID, Status: dog.Status.String()}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("dogs").
		Select("dogs.id AS id, dogs.name AS name, breeds.name AS breed, dogs.status AS status").
		Joins("JOIN breeds ON breeds.id = dogs.breed_id")
}

func rowsToDomain(rows []dogRow) ([]*domain.Dog, error) {
	list := make([]*domain.Dog, 0, len(rows))
	for i := range rows {
		dog, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		list = append(list, dog)
	}
	return list, nil
}

func (r dogRow) toDomain() (*domain.Dog, error) {
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("dog %d: %w", r.ID, err)
	}
	return &domain.Dog{ID: r.ID, Name: r.Name, Breed: r.Breed, Status: status}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
