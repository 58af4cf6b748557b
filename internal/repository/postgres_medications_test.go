package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elderguard-data/internal/domain"
)

func setupMockMedicationsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresMedicationsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresMedicationsRepository(db)
	return db, mock, repo
}

func TestCreateMedication_Success(t *testing.T) {
	db, mock, repo := setupMockMedicationsDB(t)
	defer db.Close()

	userID := uuid.New().String()

	mock.ExpectExec(`INSERT INTO medications`).
		WithArgs(sqlmock.AnyArg(), userID, "Donepezil", "5mg", "08:00, 20:00", "Before food", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	medID, err := repo.CreateMedication(context.Background(), &domain.Medication{
		UserID:       userID,
		Name:         "Donepezil",
		Dosage:       "5mg",
		Timing:       "08:00, 20:00",
		Instructions: "Before food",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, medID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMedications_Success(t *testing.T) {
	db, mock, repo := setupMockMedicationsDB(t)
	defer db.Close()

	userID := uuid.New().String()

	rows := sqlmock.NewRows([]string{
		"medication_id", "user_id", "name", "dosage", "timing",
		"instructions", "start_date", "end_date",
	}).AddRow(
		uuid.New().String(), userID, "Aspirin", "100mg", "08:00", "", nil, nil,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs(userID).
		WillReturnRows(rows)

	meds, err := repo.ListMedications(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "Aspirin", meds[0].Name)
	assert.Equal(t, "100mg", meds[0].Dosage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMedication_NotOwner(t *testing.T) {
	db, mock, repo := setupMockMedicationsDB(t)
	defer db.Close()

	userID := uuid.New().String()
	medID := uuid.New().String()

	// 非本人记录：无行受影响 -> not found
	mock.ExpectExec(`DELETE FROM medications`).
		WithArgs(medID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteMedication(context.Background(), userID, medID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMedication_Success(t *testing.T) {
	db, mock, repo := setupMockMedicationsDB(t)
	defer db.Close()

	userID := uuid.New().String()
	medID := uuid.New().String()

	mock.ExpectExec(`DELETE FROM medications`).
		WithArgs(medID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteMedication(context.Background(), userID, medID)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
