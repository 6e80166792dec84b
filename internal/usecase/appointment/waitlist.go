package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	domain "github.com/opal-salon/salon-scheduler/internal/domain/appointment"
	"github.com/opal-salon/salon-scheduler/internal/httperr"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
	"github.com/opal-salon/salon-scheduler/internal/validators"
)

// ======================================================
// ADD
// ======================================================

type AddWaitlistEntryInput struct {
	Date  string
	Name  string
	Phone string
	Prefs string
}

type AddWaitlistEntry struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddWaitlistEntry(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *AddWaitlistEntry {
	return &AddWaitlistEntry{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *AddWaitlistEntry) Execute(
	ctx context.Context,
	userID uint,
	in AddWaitlistEntryInput,
) (*models.WaitlistEntry, error) {

	if strings.TrimSpace(in.Name) == "" {
		return nil, schedule.RejectMissingField("name")
	}
	if in.Date == "" {
		return nil, schedule.RejectMissingField("date")
	}

	entry := &models.WaitlistEntry{
		ID:    uuid.NewString(),
		Date:  in.Date,
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Prefs: strings.TrimSpace(in.Prefs),
	}

	if err := uc.repo.CreateWaitlistEntry(ctx, entry); err != nil {
		return nil, err
	}

	refreshWaitlistCustomer(ctx, uc.repo, entry)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "waitlist_entry_created",
		Entity:   "waitlist",
		EntityID: entry.ID,
		Metadata: map[string]string{"date": entry.Date},
	})

	return entry, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateWaitlistEntryInput struct {
	Date  *string
	Name  *string
	Phone *string
	Prefs *string
}

type UpdateWaitlistEntry struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateWaitlistEntry(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *UpdateWaitlistEntry {
	return &UpdateWaitlistEntry{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *UpdateWaitlistEntry) Execute(
	ctx context.Context,
	userID uint,
	entryID string,
	in UpdateWaitlistEntryInput,
) (*models.WaitlistEntry, error) {

	entry, err := uc.repo.GetWaitlistEntry(ctx, entryID)
	if err != nil {
		return nil, httperr.ErrBusiness("waitlist_entry_not_found")
	}

	if in.Date != nil {
		entry.Date = *in.Date
	}
	if in.Name != nil {
		entry.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		entry.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Prefs != nil {
		entry.Prefs = strings.TrimSpace(*in.Prefs)
	}

	if entry.Name == "" {
		return nil, schedule.RejectMissingField("name")
	}
	if entry.Date == "" {
		return nil, schedule.RejectMissingField("date")
	}

	if err := uc.repo.UpdateWaitlistEntry(ctx, entry); err != nil {
		return nil, err
	}

	refreshWaitlistCustomer(ctx, uc.repo, entry)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "waitlist_entry_updated",
		Entity:   "waitlist",
		EntityID: entry.ID,
		Metadata: map[string]string{"date": entry.Date},
	})

	return entry, nil
}

// ======================================================
// REMOVE
// ======================================================

type RemoveWaitlistEntry struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveWaitlistEntry(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *RemoveWaitlistEntry {
	return &RemoveWaitlistEntry{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *RemoveWaitlistEntry) Execute(
	ctx context.Context,
	userID uint,
	entryID string,
) error {

	if _, err := uc.repo.GetWaitlistEntry(ctx, entryID); err != nil {
		return httperr.ErrBusiness("waitlist_entry_not_found")
	}

	if err := uc.repo.DeleteWaitlistEntry(ctx, entryID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "waitlist_entry_deleted",
		Entity:   "waitlist",
		EntityID: entryID,
	})

	return nil
}

// ======================================================
// LIST
// ======================================================

type ListWaitlist struct {
	repo domain.Repository
}

func NewListWaitlist(repo domain.Repository) *ListWaitlist {
	return &ListWaitlist{repo: repo}
}

func (uc *ListWaitlist) Execute(
	ctx context.Context,
	date string,
) ([]models.WaitlistEntry, error) {
	return uc.repo.ListWaitlist(ctx, date)
}

// refreshWaitlistCustomer mirrors the booking flow: a waitlisted client
// with a phone lands in the directory too. Failures never surface.
func refreshWaitlistCustomer(ctx context.Context, repo domain.Repository, entry *models.WaitlistEntry) {
	key := validators.PhoneKey(entry.Phone)
	if key == "" {
		return
	}
	err := repo.UpsertCustomer(ctx, &models.Customer{
		PhoneKey: key,
		Phone:    entry.Phone,
		Name:     entry.Name,
	})
	if err != nil {
		log.Warn().Err(err).Str("phone_key", key).Msg("customer upsert failed")
	}
}
