package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/repository"
)

// DraftService manages wizard drafts: the persisted session state holding
// everything the investor entered plus everything the engine derived.
type DraftService struct {
	draftRepo *repository.DraftRepository
}

// NewDraftService creates a new DraftService with the provided repository.
func NewDraftService(draftRepo *repository.DraftRepository) *DraftService {
	return &DraftService{
		draftRepo: draftRepo,
	}
}

// DraftUpdate carries a partial update to a draft. Nil fields are left
// untouched.
type DraftUpdate struct {
	Profile  *model.PersonalProfile
	Snapshot *model.FinancialSnapshot
	Answers  model.RiskAnswers
	Step     *model.WizardStep
}

// CreateDraft starts a new wizard session with a fresh draft ID.
func (s *DraftService) CreateDraft() (model.Draft, error) {
	draft := model.Draft{
		ID:   uuid.NewString(),
		Step: model.StepPersonalProfile,
	}
	if err := s.draftRepo.SaveDraft(draft); err != nil {
		return model.Draft{}, err
	}
	return s.draftRepo.GetDraft(draft.ID)
}

// GetDraft loads a draft by ID.
func (s *DraftService) GetDraft(id string) (model.Draft, error) {
	return s.draftRepo.GetDraft(id)
}

// UpdateDraft applies a partial update and persists the draft. Changing
// the questionnaire invalidates the derived risk profile and plan;
// changing the snapshot invalidates the plan, since capacity and targets
// must be re-derived from the new figures. A changed date of birth
// recomputes the stored age.
func (s *DraftService) UpdateDraft(id string, update DraftUpdate) (model.Draft, error) {
	draft, err := s.draftRepo.GetDraft(id)
	if err != nil {
		return model.Draft{}, err
	}

	if update.Profile != nil {
		if err := update.Profile.ComputeAge(time.Now().UTC()); err != nil {
			return model.Draft{}, err
		}
		draft.Profile = update.Profile
	}
	if update.Snapshot != nil {
		draft.Snapshot = update.Snapshot
		draft.Plan = nil
	}
	if update.Answers != nil {
		draft.RiskAnswers = update.Answers
		draft.RiskProfile = nil
		draft.Plan = nil
	}
	if update.Step != nil {
		draft.Step = *update.Step
	}

	if err := s.draftRepo.SaveDraft(draft); err != nil {
		return model.Draft{}, err
	}
	return s.draftRepo.GetDraft(id)
}

// DeleteDraft removes a draft by ID.
func (s *DraftService) DeleteDraft(id string) error {
	return s.draftRepo.DeleteDraft(id)
}
