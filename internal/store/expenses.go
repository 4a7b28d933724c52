package store

import "cafe-backend/internal/models"

func (s *Store) CreateExpense(in models.ExpenseInput) (models.Expense, error) {
	if err := validateExpense(in); err != nil {
		return models.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := models.Expense{
		ID:          s.ids.NewID(prefixExpense),
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
	}
	s.expenses = append(s.expenses, e)
	return e, nil
}
