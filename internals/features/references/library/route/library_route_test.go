package route

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preschool_backend/internals/features/references/library/model"
	"preschool_backend/internals/testutil"
)

func TestLibraryListing(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &model.TierModel{}, &model.BookModel{})
	seed := model.TierModel{Name: "Seedling", MinPoints: 0}
	sprout := model.TierModel{Name: "Sprout", MinPoints: 50}
	require.NoError(t, db.Create(&sprout).Error)
	require.NoError(t, db.Create(&seed).Error)
	require.NoError(t, db.Create(&[]model.BookModel{
		{Title: "Gấu con chia quà", TierID: seed.ID},
		{Title: "Bé biết xin lỗi", TierID: seed.ID},
		{Title: "Chú thỏ dũng cảm", TierID: sprout.ID},
	}).Error)

	app := fiber.New()
	LibraryPublicRoutes(app.Group("/api/n"), db)

	status, env := testutil.DoJSON(t, app, http.MethodGet, "/api/n/tiers?with_books=true", nil, nil)
	require.Equal(t, fiber.StatusOK, status)
	var tiers []model.TierModel
	env.DecodeData(t, &tiers)
	require.Len(t, tiers, 2)
	assert.Equal(t, "Seedling", tiers[0].Name)
	require.Len(t, tiers[0].Books, 2)
	assert.Equal(t, "Bé biết xin lỗi", tiers[0].Books[0].Title)

	status, env = testutil.DoJSON(t, app, http.MethodGet, "/api/n/books?tier_id=1", nil, nil)
	require.Equal(t, fiber.StatusOK, status)
	var books []model.BookModel
	env.DecodeData(t, &books)
	assert.Len(t, books, 1)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/n/books?tier_id=x", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
