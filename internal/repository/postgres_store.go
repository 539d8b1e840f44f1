package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// PostgresStore combines the table repositories into the same record store
// surface MemoryStore offers.
type PostgresStore struct {
	*UserRepository
	*StudentRepository
	*NoteRepository
	*AttendanceRepository
	*FeeRepository
	*CampusRepository
	*ExportJobRepository
}

// NewPostgresStore wires every repository onto db.
func NewPostgresStore(db *sqlx.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		UserRepository:       NewUserRepository(db),
		StudentRepository:    NewStudentRepository(db),
		NoteRepository:       NewNoteRepository(db),
		AttendanceRepository: NewAttendanceRepository(db, logger),
		FeeRepository:        NewFeeRepository(db),
		CampusRepository:     NewCampusRepository(db),
		ExportJobRepository:  NewExportJobRepository(db),
	}
}
