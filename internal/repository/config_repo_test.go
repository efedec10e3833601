package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_NoRowIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConfigRepo(db)

	mock.ExpectQuery("SELECT \\* FROM `hospital_config`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "settings", "updated_at"}))

	config, err := repo.GetConfig()

	require.NoError(t, err)
	assert.Nil(t, config)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWardTariffDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConfigRepo(db)

	settings := `{"hospital_name":"City General","ward_tariffs":{"PRIVATE":2500,"ICU":6000}}`
	mock.ExpectQuery("SELECT \\* FROM `hospital_config`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "settings", "updated_at"}).
			AddRow(1, settings, time.Now()))

	tariffs, err := repo.GetWardTariffDefaults()

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"PRIVATE": 2500, "ICU": 6000}, tariffs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWardTariffDefaults_NoConfiguredTariffs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConfigRepo(db)

	mock.ExpectQuery("SELECT \\* FROM `hospital_config`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "settings", "updated_at"}).
			AddRow(1, `{"hospital_name":"City General"}`, time.Now()))

	tariffs, err := repo.GetWardTariffDefaults()

	require.NoError(t, err)
	assert.Nil(t, tariffs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
