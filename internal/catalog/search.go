// Package catalog implements boardgame persistence: the filtered search over
// the boardgame×category join and the create/update/delete sequences that
// keep the category associations consistent.
package catalog

import (
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"boardshelf/backend/internal/apperr"
	"boardshelf/backend/internal/models"
)

var validate = validator.New()

// Filter holds the optional search criteria. Zero values impose no
// constraint; the dimensions combine with AND, the category names within
// their dimension with OR.
type Filter struct {
	Categories []string
	Players    int
	Time       int
	MinAge     int
}

// joinRow is one flattened (boardgame, category) pair as returned by the
// join query.
type joinRow struct {
	ID           uint
	Title        string
	ImageURL     string
	Description  string
	MinPlayers   int
	MaxPlayers   int
	MinTime      int
	MaxTime      int
	MinAge       int
	CategoryID   uint
	CategoryName string
}

const joinColumns = "bg.id, bg.title, bg.image_url, bg.description, " +
	"bg.min_players, bg.max_players, bg.min_time, bg.max_time, bg.min_age, " +
	"c.id AS category_id, c.name AS category_name"

func joined(db *gorm.DB) *gorm.DB {
	return db.Table("boardgames AS bg").
		Joins("INNER JOIN boardgame_categories bc ON bc.boardgame_id = bg.id").
		Joins("INNER JOIN categories c ON c.id = bc.category_id")
}

// Search returns the boardgames matching the filter, each carrying its
// complete category set.
//
// Matching runs in two phases. The first resolves the set of matching ids
// with the filter predicates applied to the join. The second re-joins for
// exactly those ids without the category predicate, so a game that matched
// on one category still comes back with all of them.
func Search(db *gorm.DB, filter Filter) ([]models.Boardgame, error) {
	idQuery := joined(db).Select("DISTINCT bg.id")
	if len(filter.Categories) > 0 {
		idQuery = idQuery.Where("c.name IN ?", filter.Categories)
	}
	if filter.Players > 0 {
		idQuery = idQuery.Where("bg.min_players <= ? AND bg.max_players >= ?", filter.Players, filter.Players)
	}
	if filter.Time > 0 {
		// Only the lower bound is checked; max_time does not participate.
		idQuery = idQuery.Where("bg.min_time <= ?", filter.Time)
	}
	if filter.MinAge > 0 {
		idQuery = idQuery.Where("bg.min_age <= ?", filter.MinAge)
	}

	var rows []joinRow
	err := joined(db).
		Select(joinColumns).
		Where("bg.id IN (?)", idQuery).
		Order("bg.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return group(rows)
}

// group folds the flat rows into one boardgame per contiguous id run. Only
// contiguity matters: rows for one game must be adjacent, but the runs need
// not be globally sorted.
func group(rows []joinRow) ([]models.Boardgame, error) {
	boardgames := []models.Boardgame{}
	for _, row := range rows {
		last := len(boardgames) - 1
		if last < 0 || boardgames[last].ID != row.ID {
			boardgames = append(boardgames, models.Boardgame{
				ID:          row.ID,
				Title:       row.Title,
				ImageURL:    row.ImageURL,
				Description: row.Description,
				MinPlayers:  row.MinPlayers,
				MaxPlayers:  row.MaxPlayers,
				MinTime:     row.MinTime,
				MaxTime:     row.MaxTime,
				MinAge:      row.MinAge,
				Categories: []*models.Category{
					{ID: row.CategoryID, Name: row.CategoryName},
				},
			})
			continue
		}
		boardgames[last].Categories = append(boardgames[last].Categories, &models.Category{
			ID:   row.CategoryID,
			Name: row.CategoryName,
		})
	}

	// A reconstructed game that fails validation means the stored data is
	// broken; the whole call fails rather than returning a partial result.
	for i := range boardgames {
		if err := validate.Struct(&boardgames[i]); err != nil {
			return nil, apperr.Wrap(apperr.Corrupt, "corrupt boardgame information in the database", err)
		}
	}

	return boardgames, nil
}
