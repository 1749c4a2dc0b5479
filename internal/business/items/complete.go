package items

import (
	"context"
	"fmt"
)

func (s *Service) SetCompleted(ctx context.Context, id int64, completed bool) error {
	if err := s.itemsRepository.SetCompleted(ctx, s.db, id, completed); err != nil {
		return fmt.Errorf("itemsRepository.SetCompleted: %w", err)
	}

	return nil
}
