package migrations

import (
	"gorm.io/gorm"
)

// Run creates the tables the dogs Postgres adapter reads from.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&breedRecord{},
		&dogRecord{},
	)
}

// Breed schema mirrors the dogs Postgres adapter.
type breedRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;not null;uniqueIndex"`
}

func (breedRecord) TableName() string { return "breeds" }

// Dog schema mirrors the dogs Postgres adapter.
type dogRecord struct {
	ID      int64       `gorm:"primaryKey;column:id;autoIncrement:false"`
	Name    string      `gorm:"column:name;not null"`
	BreedID int64       `gorm:"column:breed_id;not null;index"`
	Breed   breedRecord `gorm:"foreignKey:BreedID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Status  string      `gorm:"column:status;type:varchar(16);not null;index"`
}

func (dogRecord) TableName() string { return "dogs" }
