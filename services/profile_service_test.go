package services

import (
	"context"
	"testing"

	"tickethub/internal/status"
	"tickethub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfiles(profiles *fakeProfileStore, count int, role string) {
	for i := 0; i < count; i++ {
		id := string(rune('a'+i)) + "-profile"
		profiles.profiles[id] = &models.Profile{ID: id, Name: "User " + id, Role: role}
	}
}

func TestProfileUpdateSelfCannotChangeRole(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := NewProfileService(profiles)
	profiles.profiles["u1"] = &models.Profile{ID: "u1", Name: "Pat", Role: models.RoleUser}

	_, err := svc.Update(context.Background(), "u1", models.UpdateProfileRequest{Role: models.RoleAdmin},
		models.Profile{ID: "u1", Role: models.RoleUser})
	require.Error(t, err)
	assert.Equal(t, status.KindForbidden, status.KindOf(err))
}

func TestProfileUpdateOtherRequiresAdmin(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := NewProfileService(profiles)
	profiles.profiles["u1"] = &models.Profile{ID: "u1", Name: "Pat", Role: models.RoleUser}

	_, err := svc.Update(context.Background(), "u1", models.UpdateProfileRequest{Name: "Hacked"},
		models.Profile{ID: "u2", Role: models.RoleUser})
	require.Error(t, err)
	assert.Equal(t, status.KindForbidden, status.KindOf(err))

	updated, err := svc.Update(context.Background(), "u1", models.UpdateProfileRequest{Name: "Renamed", Role: models.RoleAdmin},
		models.Profile{ID: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestProfileUpdateRejectsUnknownRole(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := NewProfileService(profiles)
	profiles.profiles["u1"] = &models.Profile{ID: "u1", Name: "Pat", Role: models.RoleUser}

	_, err := svc.Update(context.Background(), "u1", models.UpdateProfileRequest{Role: "superuser"},
		models.Profile{ID: "admin", Role: models.RoleAdmin})
	require.Error(t, err)
	assert.Equal(t, status.KindBadRequest, status.KindOf(err))
}

func TestProfileListPagination(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := NewProfileService(profiles)
	seedProfiles(profiles, 5, models.RoleUser)

	page1, pagination, err := svc.List(context.Background(), models.ProfileFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, int64(5), pagination.Total)
	assert.Equal(t, 3, pagination.Pages)

	page2, _, err := svc.List(context.Background(), models.ProfileFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)

	// Pages never overlap.
	for _, a := range page1 {
		for _, b := range page2 {
			assert.NotEqual(t, a.ID, b.ID)
		}
	}

	page3, _, err := svc.List(context.Background(), models.ProfileFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestProfileListDefaults(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := NewProfileService(profiles)
	seedProfiles(profiles, 3, models.RoleUser)

	_, pagination, err := svc.List(context.Background(), models.ProfileFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 10, pagination.Limit)
	assert.Equal(t, 1, pagination.Pages)
}
