package services

import (
	"context"
	"errors"

	"tickethub/internal/status"
	"tickethub/models"
	"tickethub/store"
)

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.NotFound("Profile not found")
		}
		return nil, status.Internal("Failed to load profile", err)
	}
	return profile, nil
}

// Update edits a profile. Only admins may touch the role field, including on
// their own profile.
func (s *ProfileService) Update(ctx context.Context, id string, req models.UpdateProfileRequest, caller models.Profile) (*models.Profile, error) {
	if id != caller.ID && caller.Role != models.RoleAdmin {
		return nil, status.Forbidden("You do not have permission to update this profile")
	}

	changes := map[string]any{}
	if req.Name != "" {
		changes["name"] = req.Name
	}
	if req.Role != "" {
		if caller.Role != models.RoleAdmin {
			return nil, status.Forbidden("Only admins can change roles")
		}
		if !models.IsValidRole(req.Role) {
			return nil, status.BadRequest("Invalid role")
		}
		changes["role"] = req.Role
	}
	if len(changes) == 0 {
		return s.GetByID(ctx, id)
	}

	updated, err := s.profiles.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.NotFound("Profile not found")
		}
		return nil, status.Internal("Failed to update profile", err)
	}
	return updated, nil
}

func (s *ProfileService) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, *models.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	profiles, err := s.profiles.List(ctx, filter)
	if err != nil {
		return nil, nil, status.Internal("Failed to load profiles", err)
	}
	total, err := s.profiles.Count(ctx, filter)
	if err != nil {
		return nil, nil, status.Internal("Failed to count profiles", err)
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return profiles, &models.Pagination{
		Total: total,
		Limit: filter.Limit,
		Page:  filter.Page,
		Pages: pages,
	}, nil
}
