package catalog

import (
	"errors"

	"gorm.io/gorm"

	"boardshelf/backend/internal/apperr"
	"boardshelf/backend/internal/models"
)

// ErrDuplicateTitle is returned when a create or update collides with an
// existing title.
var ErrDuplicateTitle = apperr.New(apperr.Conflict, "Boardgame already exists")

// GetByID returns one boardgame with its full category set.
func GetByID(db *gorm.DB, id uint) (*models.Boardgame, error) {
	return getOne(db, "bg.id = ?", id)
}

// GetByTitle returns one boardgame with its full category set.
func GetByTitle(db *gorm.DB, title string) (*models.Boardgame, error) {
	return getOne(db, "bg.title = ?", title)
}

func getOne(db *gorm.DB, condition string, value interface{}) (*models.Boardgame, error) {
	var rows []joinRow
	err := joined(db).
		Select(joinColumns).
		Where(condition, value).
		Order("bg.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	boardgames, err := group(rows)
	if err != nil {
		return nil, err
	}
	if len(boardgames) > 1 {
		return nil, apperr.New(apperr.Corrupt, "corrupt boardgame information in the database")
	}
	if len(boardgames) == 0 {
		return nil, apperr.New(apperr.NotFound, "Boardgame not found")
	}
	return &boardgames[0], nil
}

// Create inserts the boardgame and its category associations in one
// transaction. The categories must already exist; only join rows are
// written for them.
func Create(db *gorm.DB, boardgame *models.Boardgame) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Categories.*").Create(boardgame).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTitle
	}
	return err
}

// Update saves the boardgame's fields and replaces its category
// associations. Both run inside one transaction so no reader can observe
// the game with an empty category set between the delete and the re-insert.
func Update(db *gorm.DB, boardgame *models.Boardgame, categories []*models.Category) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Save(boardgame).Error; err != nil {
			return err
		}
		return tx.Model(boardgame).Omit("Categories.*").Association("Categories").Replace(categories)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTitle
	}
	return err
}

// Delete removes the boardgame's category associations and the game itself
// in one transaction, returning the record as it was before deletion.
func Delete(db *gorm.DB, id uint) (*models.Boardgame, error) {
	boardgame, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Boardgame{ID: id}).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Boardgame{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return boardgame, nil
}
