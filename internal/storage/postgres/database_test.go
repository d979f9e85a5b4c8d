package postgres

import (
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipLeonard/blogql/models"
)

// setupTestDB поднимает sqlite in-memory БД с миграциями и подменяет
// глобальную DB на время теста.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// одно соединение, иначе каждый коннект пула получит свою :memory: базу
	testDB.DB().SetMaxOpenConns(1)

	require.NoError(t, testDB.AutoMigrate(&models.User{}, &models.Post{}).Error)

	originalDB := DB
	InitDBWithConnection(testDB)

	t.Cleanup(func() {
		DB = originalDB
		testDB.Close()
	})

	return testDB
}

func TestGetDB(t *testing.T) {
	testDB := setupTestDB(t)

	result := GetDB()
	assert.Equal(t, testDB, result)
}

func TestInitDBWithConnection(t *testing.T) {
	originalDB := DB

	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer testDB.Close()

	InitDBWithConnection(testDB)
	assert.Equal(t, testDB, DB)

	DB = originalDB
}

// Проверка поведения CloseDB с nil-базой данных
func TestCloseDBWithNilDB(t *testing.T) {
	originalDB := DB

	DB = nil
	err := CloseDB()
	assert.NoError(t, err)

	DB = originalDB
}

// Примечание: тесты InitDB с реальным подключением не включены, так как они требуют настоящую PostgreSQL базу данных.
