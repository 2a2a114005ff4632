package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE stops (id INTEGER PRIMARY KEY, name TEXT NOT NULL, lat REAL)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "stops")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byName := make(map[string]ColumnInfo)
	for _, col := range columns {
		byName[col.Field] = col
	}
	assert.Equal(t, "integer", byName["id"].Type)
	assert.Equal(t, "PRI", byName["id"].Key)
	assert.Equal(t, "NO", byName["name"].Null)
	assert.Equal(t, "real", byName["lat"].Type)

	// PRAGMA table_info returns no rows for an unknown table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE stops (id INTEGER PRIMARY KEY, name TEXT)").Error)

	missing, err := MissingColumns(db, "stops", []string{"id", "NAME", "saved", "updated"})
	require.NoError(t, err)
	assert.Equal(t, []string{"saved", "updated"}, missing)

	missing, err = MissingColumns(db, "other", []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, missing)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "INT(11)", "NO", "PRI", nil, "").
		AddRow("Name", "VARCHAR(255)", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `stops`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "stops")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "int(11)", columns[0].Type)
	assert.Equal(t, "name", columns[1].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}
