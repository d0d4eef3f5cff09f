package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "preschool_backend/internals/databases"
	actionModel "preschool_backend/internals/features/emotions/actions/model"
	catalogModel "preschool_backend/internals/features/emotions/catalog/model"
	questionModel "preschool_backend/internals/features/quizzes/questions/model"
	libraryModel "preschool_backend/internals/features/references/library/model"
	userModel "preschool_backend/internals/features/users/user/model"
	"preschool_backend/internals/testutil"
)

func TestRunAllSeedsIsIdempotent(t *testing.T) {
	t.Setenv("SEED_ADMIN_EMAIL", "Admin@Example.com")
	t.Setenv("SEED_ADMIN_PASSWORD", "rahasia123")

	db := testutil.NewSQLiteDB(t, database.AllModels()...)

	RunAllSeeds(db)
	RunAllSeeds(db)

	var emotions, actions, types, tiers, books, admins int64
	require.NoError(t, db.Model(&catalogModel.EmotionModel{}).Count(&emotions).Error)
	require.NoError(t, db.Model(&actionModel.ActionModel{}).Count(&actions).Error)
	require.NoError(t, db.Model(&questionModel.QuestionTypeModel{}).Count(&types).Error)
	require.NoError(t, db.Model(&libraryModel.TierModel{}).Count(&tiers).Error)
	require.NoError(t, db.Model(&libraryModel.BookModel{}).Count(&books).Error)
	require.NoError(t, db.Model(&userModel.UserModel{}).Where("email = ? AND role = ?", "admin@example.com", "admin").Count(&admins).Error)

	assert.EqualValues(t, 5, emotions)
	assert.EqualValues(t, 9, actions)
	assert.EqualValues(t, 4, types)
	assert.EqualValues(t, 3, tiers)
	assert.EqualValues(t, 5, books)
	assert.EqualValues(t, 1, admins)
}
