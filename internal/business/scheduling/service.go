package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"go.uber.org/zap"
)

// Service wires the generator to the availability materializer. The chosen
// candidate is persisted by the caller through the items service; this
// service never writes anything.
type Service struct {
	logger       *zap.SugaredLogger
	participants participantsSource
}

type participantsSource interface {
	Participants(ctx context.Context, userIDs []int64, rng model.TimeInterval) ([]*model.Participant, error)
}

func NewService(logger *zap.SugaredLogger, participants participantsSource) *Service {
	return &Service{
		logger:       logger,
		participants: participants,
	}
}

type SuggestRequest struct {
	RequesterID     int64
	ParticipantIDs  []int64
	DurationMinutes int
	RangeStart      time.Time
	RangeEnd        time.Time
	DayParts        []model.DayPart
}

func (s *Service) Suggest(ctx context.Context, req *SuggestRequest) ([]*model.CandidateSlot, error) {
	ids := append([]int64{req.RequesterID}, req.ParticipantIDs...)

	participants, err := s.participants.Participants(ctx, ids, model.TimeInterval{
		From: req.RangeStart,
		To:   req.RangeEnd.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("materialize participants: %w", err)
	}

	slots := GenerateSlots(&Request{
		DurationMinutes: req.DurationMinutes,
		RangeStart:      req.RangeStart,
		RangeEnd:        req.RangeEnd,
		DayParts:        req.DayParts,
		Participants:    participants,
	}, time.Now())

	s.logger.Debugw("generated candidate slots",
		"requester", req.RequesterID,
		"participants", len(participants),
		"candidates", len(slots),
	)

	return slots, nil
}
