package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-salon/salon-scheduler/internal/httperr"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

func TestAddWaitlistEntry(t *testing.T) {
	repo := newFakeRepo()
	uc := NewAddWaitlistEntry(repo, testDispatcher())

	entry, err := uc.Execute(context.Background(), 1, AddWaitlistEntryInput{
		Date:  openTuesday,
		Name:  "  Eleni ",
		Phone: "+30 697 123 4567",
		Prefs: "afternoon",
	})
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Eleni", entry.Name)
	assert.Equal(t, "afternoon", entry.Prefs)

	stored, err := repo.GetWaitlistEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, openTuesday, stored.Date)

	// Joining the waitlist refreshes the customer directory the same
	// way a booking does.
	customer, ok := repo.customers["306971234567"]
	require.True(t, ok)
	assert.Equal(t, "Eleni", customer.Name)
}

func TestAddWaitlistEntryWithoutPhone(t *testing.T) {
	repo := newFakeRepo()
	uc := NewAddWaitlistEntry(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, AddWaitlistEntryInput{
		Date: openTuesday,
		Name: "Eleni",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.customers)
}

func TestAddWaitlistEntryMissingFields(t *testing.T) {
	repo := newFakeRepo()
	uc := NewAddWaitlistEntry(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, AddWaitlistEntryInput{Date: openTuesday, Name: "  "})
	rej := rejection(t, err)
	assert.Equal(t, schedule.ReasonMissingField, rej.Reason)
	assert.Equal(t, "name", rej.Field)

	_, err = uc.Execute(context.Background(), 1, AddWaitlistEntryInput{Name: "Eleni"})
	rej = rejection(t, err)
	assert.Equal(t, "date", rej.Field)
}

func TestUpdateWaitlistEntry(t *testing.T) {
	repo := newFakeRepo()
	add := NewAddWaitlistEntry(repo, testDispatcher())
	entry, err := add.Execute(context.Background(), 1, AddWaitlistEntryInput{
		Date: openTuesday,
		Name: "Eleni",
	})
	require.NoError(t, err)

	uc := NewUpdateWaitlistEntry(repo, testDispatcher())
	phone := "+30 697 123 4567"
	prefs := "morning only"
	updated, err := uc.Execute(context.Background(), 1, entry.ID, UpdateWaitlistEntryInput{
		Phone: &phone,
		Prefs: &prefs,
	})
	require.NoError(t, err)

	assert.Equal(t, "Eleni", updated.Name)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, prefs, updated.Prefs)

	// Adding a phone later still lands the client in the directory.
	_, ok := repo.customers["306971234567"]
	assert.True(t, ok)
}

func TestUpdateWaitlistEntryClearedName(t *testing.T) {
	repo := newFakeRepo()
	add := NewAddWaitlistEntry(repo, testDispatcher())
	entry, err := add.Execute(context.Background(), 1, AddWaitlistEntryInput{
		Date: openTuesday,
		Name: "Eleni",
	})
	require.NoError(t, err)

	uc := NewUpdateWaitlistEntry(repo, testDispatcher())
	blank := "   "
	_, err = uc.Execute(context.Background(), 1, entry.ID, UpdateWaitlistEntryInput{Name: &blank})
	rej := rejection(t, err)
	assert.Equal(t, "name", rej.Field)

	// The stored entry is untouched.
	stored, err := repo.GetWaitlistEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eleni", stored.Name)
}

func TestUpdateWaitlistEntryNotFound(t *testing.T) {
	uc := NewUpdateWaitlistEntry(newFakeRepo(), testDispatcher())

	name := "Eleni"
	_, err := uc.Execute(context.Background(), 1, "ghost", UpdateWaitlistEntryInput{Name: &name})
	assert.True(t, httperr.IsBusiness(err, "waitlist_entry_not_found"))
}

func TestRemoveWaitlistEntry(t *testing.T) {
	repo := newFakeRepo()
	add := NewAddWaitlistEntry(repo, testDispatcher())
	entry, err := add.Execute(context.Background(), 1, AddWaitlistEntryInput{
		Date: openTuesday,
		Name: "Eleni",
	})
	require.NoError(t, err)

	uc := NewRemoveWaitlistEntry(repo, testDispatcher())
	require.NoError(t, uc.Execute(context.Background(), 1, entry.ID))

	_, err = repo.GetWaitlistEntry(context.Background(), entry.ID)
	assert.Error(t, err)

	assert.True(t, httperr.IsBusiness(
		uc.Execute(context.Background(), 1, "ghost"),
		"waitlist_entry_not_found",
	))
}

func TestListWaitlistFiltersByDate(t *testing.T) {
	repo := newFakeRepo()
	add := NewAddWaitlistEntry(repo, testDispatcher())

	_, err := add.Execute(context.Background(), 1, AddWaitlistEntryInput{Date: openTuesday, Name: "Eleni"})
	require.NoError(t, err)
	_, err = add.Execute(context.Background(), 1, AddWaitlistEntryInput{Date: "2026-03-10", Name: "Maria"})
	require.NoError(t, err)

	uc := NewListWaitlist(repo)

	entries, err := uc.Execute(context.Background(), openTuesday)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Eleni", entries[0].Name)

	all, err := uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
