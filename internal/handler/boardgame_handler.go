package handler

import (
	"net/http"
	"strconv"
	"strings"

	"boardshelf/backend/internal/apperr"
	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/database"
	"boardshelf/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// CategoryRef references an existing category by id when attaching it to a
// boardgame.
type CategoryRef struct {
	ID   uint   `json:"id" binding:"required,min=1"`
	Name string `json:"name" binding:"omitempty,max=50"`
}

// BoardgameInput defines the payload for creating a boardgame.
type BoardgameInput struct {
	Title       string        `json:"title" binding:"required,max=100"`
	ImageURL    string        `json:"image_url" binding:"omitempty,uri,max=255"`
	Description string        `json:"description" binding:"required,max=500"`
	MinPlayers  int           `json:"min_players" binding:"required,min=1"`
	MaxPlayers  int           `json:"max_players" binding:"required,min=1"`
	MinTime     int           `json:"min_time" binding:"required,min=1"`
	MaxTime     int           `json:"max_time" binding:"required,min=1"`
	MinAge      int           `json:"min_age" binding:"required,min=1"`
	Categories  []CategoryRef `json:"categories" binding:"required,min=1,dive"`
}

// BoardgameUpdateInput defines the payload for a partial update. Absent
// fields keep their stored value.
type BoardgameUpdateInput struct {
	Title       *string       `json:"title" binding:"omitempty,max=100"`
	ImageURL    *string       `json:"image_url" binding:"omitempty,uri,max=255"`
	Description *string       `json:"description" binding:"omitempty,max=500"`
	MinPlayers  *int          `json:"min_players" binding:"omitempty,min=1"`
	MaxPlayers  *int          `json:"max_players" binding:"omitempty,min=1"`
	MinTime     *int          `json:"min_time" binding:"omitempty,min=1"`
	MaxTime     *int          `json:"max_time" binding:"omitempty,min=1"`
	MinAge      *int          `json:"min_age" binding:"omitempty,min=1"`
	Categories  []CategoryRef `json:"categories" binding:"omitempty,min=1,dive"`
}

// BoardgameQuery defines the supported search filters. Pointer fields tell
// an absent filter apart from an explicit zero, which is invalid.
type BoardgameQuery struct {
	Category string `form:"category"`
	Players  *int   `form:"players" binding:"omitempty,min=1"`
	Time     *int   `form:"time" binding:"omitempty,min=1"`
	MinAge   *int   `form:"minage" binding:"omitempty,min=1"`
}

// GetBoardgames godoc
// @Summary      Search boardgames
// @Description  Lists boardgames matching the optional filters. Each result carries its complete category set, not just the categories that matched.
// @Tags         boardgames
// @Produce      json
// @Param        category query string false "Comma-separated category names (any match)"
// @Param        players  query int    false "Player count within min/max players"
// @Param        time     query int    false "Play time of at least min time"
// @Param        minage   query int    false "Minimum age at most this value"
// @Success      200  {array}   models.Boardgame
// @Failure      400  {object}  ErrorResponse
// @Router       /boardgames [get]
func GetBoardgames(c *gin.Context) {
	var query BoardgameQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	// Statement separators are rejected outright even though the predicates
	// are parameterized further down.
	if strings.Contains(query.Category, ";") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	filter := catalog.Filter{Categories: splitCommaSeparated(query.Category)}
	if query.Players != nil {
		filter.Players = *query.Players
	}
	if query.Time != nil {
		filter.Time = *query.Time
	}
	if query.MinAge != nil {
		filter.MinAge = *query.MinAge
	}

	boardgames, err := catalog.Search(database.DB, filter)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, boardgames)
}

// CreateBoardgame godoc
// @Summary      Create a boardgame
// @Description  Creates a boardgame and associates it with existing categories.
// @Tags         boardgames
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        input body BoardgameInput true "Boardgame"
// @Success      201  {object}  models.Boardgame
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Boardgame already exists"
// @Router       /boardgames [post]
func CreateBoardgame(c *gin.Context) {
	var input BoardgameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	categories, ok := resolveCategories(c, input.Categories)
	if !ok {
		return
	}

	boardgame := models.Boardgame{
		Title:       input.Title,
		ImageURL:    input.ImageURL,
		Description: input.Description,
		MinPlayers:  input.MinPlayers,
		MaxPlayers:  input.MaxPlayers,
		MinTime:     input.MinTime,
		MaxTime:     input.MaxTime,
		MinAge:      input.MinAge,
		Categories:  categories,
	}

	if err := catalog.Create(database.DB, &boardgame); err != nil {
		apperr.Respond(c, err)
		return
	}

	created, err := catalog.GetByID(database.DB, boardgame.ID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateBoardgame godoc
// @Summary      Update a boardgame
// @Description  Merges the given fields onto the stored boardgame and replaces its categories when a category list is given.
// @Tags         boardgames
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path int                  true "Boardgame ID"
// @Param        input body BoardgameUpdateInput true "Fields to update"
// @Success      200  {object}  models.Boardgame
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Boardgame not found"
// @Failure      409  {object}  ErrorResponse "Boardgame already exists"
// @Router       /boardgames/{id} [put]
func UpdateBoardgame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	boardgame, err := catalog.GetByID(database.DB, uint(id))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var input BoardgameUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	if input.Title != nil {
		boardgame.Title = *input.Title
	}
	if input.ImageURL != nil {
		boardgame.ImageURL = *input.ImageURL
	}
	if input.Description != nil {
		boardgame.Description = *input.Description
	}
	if input.MinPlayers != nil {
		boardgame.MinPlayers = *input.MinPlayers
	}
	if input.MaxPlayers != nil {
		boardgame.MaxPlayers = *input.MaxPlayers
	}
	if input.MinTime != nil {
		boardgame.MinTime = *input.MinTime
	}
	if input.MaxTime != nil {
		boardgame.MaxTime = *input.MaxTime
	}
	if input.MinAge != nil {
		boardgame.MinAge = *input.MinAge
	}

	categories := boardgame.Categories
	if input.Categories != nil {
		var ok bool
		categories, ok = resolveCategories(c, input.Categories)
		if !ok {
			return
		}
	}

	if err := catalog.Update(database.DB, boardgame, categories); err != nil {
		apperr.Respond(c, err)
		return
	}

	updated, err := catalog.GetByID(database.DB, boardgame.ID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteBoardgame godoc
// @Summary      Delete a boardgame
// @Description  Removes a boardgame and its category associations, responding with the deleted record.
// @Tags         boardgames
// @Produce      json
// @Security     TokenAuth
// @Param        id path int true "Boardgame ID"
// @Success      200  {object}  models.Boardgame "The deleted boardgame"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Boardgame not found"
// @Router       /boardgames/{id} [delete]
func DeleteBoardgame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Badly formatted request"})
		return
	}

	deleted, err := catalog.Delete(database.DB, uint(id))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, deleted)
}

// resolveCategories loads the referenced category rows and answers 400 if
// any id is unknown. It writes the error response itself.
func resolveCategories(c *gin.Context, refs []CategoryRef) ([]*models.Category, bool) {
	ids := make([]uint, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	var categories []*models.Category
	if len(ids) > 0 {
		if err := database.DB.Find(&categories, ids).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve categories"})
			return nil, false
		}
	}
	if len(categories) != len(ids) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return nil, false
	}

	return categories, true
}

// splitCommaSeparated splits a comma-separated filter value, trimming
// whitespace and dropping empty parts.
func splitCommaSeparated(s string) []string {
	s = strings.ReplaceAll(s, "\n", "")
	var result []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
