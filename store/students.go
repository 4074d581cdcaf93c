package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/yarrakiran3/polling-system-backend/models"
)

// RegisterStudent binds a display name to a connection handle. If the
// handle is already bound, the existing record is returned unchanged.
func (s *Store) RegisterStudent(ctx context.Context, name, connID string) (models.Student, error) {
	existing, err := s.FindStudentByConn(ctx, connID)
	if err == nil {
		return existing, nil
	}
	if err != ErrNotFound {
		return models.Student{}, err
	}

	student := models.Student{
		ID:     uuid.New().String(),
		Name:   name,
		ConnID: &connID,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO students (id, name, conn_id)
		VALUES ($1, $2, $3)
	`, student.ID, student.Name, connID)
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to insert student: %w", err)
	}

	return student, nil
}

// GetStudent reads a student by id. Returns ErrNotFound when unknown.
func (s *Store) GetStudent(ctx context.Context, id string) (models.Student, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, conn_id FROM students WHERE id = $1
	`, id)
	return scanStudent(row)
}

// FindStudentByConn reads a student by connection handle.
func (s *Store) FindStudentByConn(ctx context.Context, connID string) (models.Student, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, conn_id FROM students WHERE conn_id = $1
	`, connID)
	return scanStudent(row)
}

// GetConnectedStudents returns students with a live connection handle.
// Read fresh on every evaluation; connections churn asynchronously and
// this set is the denominator for admission and completion decisions.
func (s *Store) GetConnectedStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, conn_id FROM students WHERE conn_id IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.ConnID); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// ClearConn detaches a connection handle from its student record. The
// record itself survives so past responses stay attributable.
func (s *Store) ClearConn(ctx context.Context, connID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE students SET conn_id = NULL WHERE conn_id = $1
	`, connID)
	if err != nil {
		return fmt.Errorf("failed to clear connection: %w", err)
	}
	return nil
}

// DeleteStudent removes a student record entirely.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM students WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}

func scanStudent(row *sql.Row) (models.Student, error) {
	var student models.Student
	err := row.Scan(&student.ID, &student.Name, &student.ConnID)
	if err == sql.ErrNoRows {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}
