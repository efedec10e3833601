package repository

import (
	"testing"
	"time"

	"hospital-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestCountAdmissions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdmissionRepo(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admissions`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(7))

	count, err := repo.CountAdmissions()

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAdmissionsByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdmissionRepo(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admissions` WHERE status = \\?").
		WithArgs(models.AdmissionAdmitted).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := repo.CountAdmissionsByStatus(models.AdmissionAdmitted)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAdmittedByWard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdmissionRepo(db)

	mock.ExpectQuery("SELECT wards.name AS ward_name, COUNT\\(\\*\\) AS count FROM `admissions` INNER JOIN wards").
		WithArgs(models.AdmissionAdmitted).
		WillReturnRows(sqlmock.NewRows([]string{"ward_name", "count"}).
			AddRow("West General", 5).
			AddRow("ICU A", 2))

	counts, err := repo.CountAdmittedByWard()

	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, models.WardCount{WardName: "West General", Count: 5}, counts[0])
	assert.Equal(t, models.WardCount{WardName: "ICU A", Count: 2}, counts[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStayWindows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdmissionRepo(db)

	admitted := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	discharged := admitted.Add(96 * time.Hour)

	mock.ExpectQuery("SELECT admitted_at, discharged_at FROM `admissions` WHERE status = \\? AND discharged_at IS NOT NULL").
		WithArgs(models.AdmissionDischarged).
		WillReturnRows(sqlmock.NewRows([]string{"admitted_at", "discharged_at"}).
			AddRow(admitted, discharged))

	windows, err := repo.ListStayWindows()

	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, admitted, windows[0].AdmittedAt)
	assert.Equal(t, discharged, windows[0].DischargedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveAdmissionByPatientID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdmissionRepo(db)

	mock.ExpectQuery("SELECT \\* FROM `admissions` WHERE patient_id = \\? AND status = \\?").
		WithArgs(uint(5), models.AdmissionAdmitted, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	admission, err := repo.GetActiveAdmissionByPatientID(5)

	assert.ErrorIs(t, err, ErrAdmissionNotFound)
	assert.Nil(t, admission)
	assert.NoError(t, mock.ExpectationsWereMet())
}
