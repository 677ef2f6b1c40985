package calendar

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	cal "github.com/BruksfildServices01/booking-calendar/internal/domain/calendar"
	"github.com/BruksfildServices01/booking-calendar/internal/dto"
)

type GetDraftInput struct {
	WorkspaceID uint
	Date        string
	Hour        int
}

// GetDraft answers a click on an empty hour slot with a prefilled
// appointment for that hour.
type GetDraft struct {
	repo      domain.Repository
	defaultTZ string
	now       func() time.Time
}

func NewGetDraft(repo domain.Repository, defaultTZ string) *GetDraft {
	return &GetDraft{
		repo:      repo,
		defaultTZ: defaultTZ,
		now:       time.Now,
	}
}

func (uc *GetDraft) Execute(ctx context.Context, in GetDraftInput) (*dto.DraftDTO, error) {
	loc, err := workspaceLocation(ctx, uc.repo, in.WorkspaceID, uc.defaultTZ)
	if err != nil {
		return nil, err
	}

	day, err := resolveDate(in.Date, uc.now().In(loc), loc)
	if err != nil {
		return nil, err
	}

	draft, err := cal.NewDraft(day, in.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.DraftDTO{
		WorkspaceID: in.WorkspaceID,
		Appointment: draft,
	}, nil
}
