package store

import (
	"fmt"

	"cafe-backend/internal/models"
)

func (s *Store) CreateStaff(in models.StaffInput) (models.Staff, error) {
	if err := validateStaff(in.Name, in.Role, in.Salary); err != nil {
		return models.Staff{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := models.Staff{
		ID:       s.ids.NewID(prefixStaff),
		Name:     in.Name,
		Role:     in.Role,
		Shift:    in.Shift,
		Salary:   in.Salary,
		JoinDate: in.JoinDate,
	}
	s.staff = append(s.staff, st)
	return st, nil
}

// UpdateStaff replaces the staff member with the same id. An unknown id
// yields ErrNotFound and changes nothing.
func (s *Store) UpdateStaff(st models.Staff) (models.Staff, error) {
	_, after, err := s.PatchStaff(st.ID, func(dst *models.Staff) { *dst = st })
	return after, err
}

// PatchStaff is the staff counterpart of PatchProduct.
func (s *Store) PatchStaff(id string, edit func(*models.Staff)) (before, after models.Staff, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.staffIndex(id)
	if i < 0 {
		return before, after, fmt.Errorf("staff %q: %w", id, ErrNotFound)
	}

	before = s.staff[i]
	after = before
	edit(&after)
	after.ID = id

	if err := validateStaff(after.Name, after.Role, after.Salary); err != nil {
		return before, models.Staff{}, err
	}

	s.staff[i] = after
	return before, after, nil
}

// DeleteStaff removes the staff member. Attendance history is kept.
func (s *Store) DeleteStaff(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.staffIndex(id)
	if i < 0 {
		return fmt.Errorf("staff %q: %w", id, ErrNotFound)
	}
	s.staff = append(s.staff[:i:i], s.staff[i+1:]...)
	return nil
}
