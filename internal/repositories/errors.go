package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned when the requested row does not exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a primary key or unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingReference is returned when a write references a row that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// translate maps GORM errors onto the repository sentinels. It relies on
// gorm.Config.TranslateError being enabled.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrMissingReference
	}
	return err
}
