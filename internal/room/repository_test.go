package room

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

var roomColumns = []string{"id", "name", "created_at"}

func TestCreate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rooms (id, name)")).
		WithArgs("R1", "Quincho").
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("R1", "Quincho", now))

	room, err := repo.Create(context.Background(), "R1", "Quincho")
	require.NoError(t, err)
	assert.Equal(t, "R1", room.ID)
	assert.Equal(t, "Quincho", room.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, created_at")).
		WillReturnRows(sqlmock.NewRows(roomColumns).
			AddRow("R1", "Quincho", now).
			AddRow("R2", "SUM", now))

	rooms, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Quincho", rooms[0].Name)
	assert.Equal(t, "SUM", rooms[1].Name)
}

func TestGetByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, created_at")).
		WithArgs("R1").
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("R1", "Quincho", now))

	room, err := repo.GetByID(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "R1", room.ID)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, created_at")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(roomColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM rooms WHERE id = $1)")).
		WithArgs("R1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), "R1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpdateName(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE rooms")).
		WithArgs("R1", "Terraza").
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("R1", "Terraza", now))

	room, err := repo.UpdateName(context.Background(), "R1", "Terraza")
	require.NoError(t, err)
	assert.Equal(t, "Terraza", room.Name)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE rooms")).
		WithArgs("missing", "Terraza").
		WillReturnRows(sqlmock.NewRows(roomColumns))

	_, err = repo.UpdateName(context.Background(), "missing", "Terraza")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestDeleteRoom(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1")).
		WithArgs("R1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "R1")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
