// internals/testutil/testutil.go
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "booknetwork_backend/internals/databases"
	bookModel "booknetwork_backend/internals/features/books/model"
	userModel "booknetwork_backend/internals/features/users/model"
)

// OpenTestDB opens an in-memory sqlite database with the full schema.
// The pool is capped at one connection so concurrent transactions in tests
// serialize the same way a single sqlite writer would.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, firstName, lastName string) userModel.UserModel {
	t.Helper()

	user := userModel.UserModel{
		UserFirstName: firstName,
		UserLastName:  lastName,
		UserEmail:     firstName + "." + lastName + "+" + uuid.NewString()[:8] + "@example.com",
		UserPassword:  "not-a-real-hash",
		UserEnabled:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func CreateBook(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string, shareable, archived bool) bookModel.BookModel {
	t.Helper()

	book := bookModel.BookModel{
		BookTitle:      title,
		BookAuthorName: "Author of " + title,
		BookISBN:       "978-" + uuid.NewString()[:8],
		BookSynopsis:   "Synopsis of " + title,
		BookShareable:  shareable,
		BookArchived:   archived,
		BookOwnerID:    ownerID,
		BookCreatedBy:  ownerID,
		BookUpdatedBy:  ownerID,
	}
	require.NoError(t, db.Create(&book).Error)
	return book
}
