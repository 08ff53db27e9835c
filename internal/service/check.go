package service

import (
	"context"

	"github.com/julianstephens/habitboard/internal/validation"
)

// Validate scans every habit and log in the store for integrity conflicts.
func (s *Service) Validate(ctx context.Context) (validation.ValidationResult, error) {
	habits, err := s.store.GetAllHabits(ctx)
	if err != nil {
		return validation.ValidationResult{}, err
	}
	logs, err := s.store.GetAllLogs(ctx)
	if err != nil {
		return validation.ValidationResult{}, err
	}

	v := validation.New()
	result := v.ValidateHabits(habits)
	logResult := v.ValidateLogs(habits, logs)
	result.Conflicts = append(result.Conflicts, logResult.Conflicts...)
	return result, nil
}
