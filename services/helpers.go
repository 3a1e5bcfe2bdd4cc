package services

import (
	"strings"

	"github.com/albertofp/club-system/models"
	"github.com/albertofp/club-system/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isValidTournamentStatus(status models.TournamentStatus) bool {
	switch status {
	case models.TournamentStatusUpcoming,
		models.TournamentStatusActive,
		models.TournamentStatusCompleted,
		models.TournamentStatusCanceled:
		return true
	}
	return false
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.TournamentStatusUpcoming:  {models.TournamentStatusActive, models.TournamentStatusCanceled},
		models.TournamentStatusActive:    {models.TournamentStatusCompleted, models.TournamentStatusCanceled},
		models.TournamentStatusCompleted: {},
		models.TournamentStatusCanceled:  {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

// parseFormat maps the request's format string onto a TournamentFormat. An
// empty value defaults to a single round-robin; anything else unknown is
// rejected rather than silently defaulted, so a typo can never produce a
// schedule the caller did not ask for.
func parseFormat(raw string) (models.TournamentFormat, error) {
	switch strings.TrimSpace(raw) {
	case "":
		return models.FormatRoundRobin, nil
	case string(models.FormatRoundRobin):
		return models.FormatRoundRobin, nil
	case string(models.FormatDoubleRoundRobin):
		return models.FormatDoubleRoundRobin, nil
	default:
		return "", ErrInvalidFormat
	}
}

func populateChildPhotoURL(child *models.Child, uploader storage.FileUploader) {
	if child != nil && child.PhotoKey != nil && *child.PhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*child.PhotoKey)
		child.PhotoURL = &url
	}
}

func populateTeamCrestURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.CrestKey != nil && *team.CrestKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.CrestKey)
		team.CrestURL = &url
	}
}

func populateProductImageURL(product *models.Product, uploader storage.FileUploader) {
	if product != nil && product.ImageKey != nil && *product.ImageKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*product.ImageKey)
		product.ImageURL = &url
	}
}
