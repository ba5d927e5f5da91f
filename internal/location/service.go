// Package location moves characters between locations. A character may only
// enter active locations whose minimum level it has reached.
package location

import (
	"context"
	"fmt"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/logger"
	"github.com/osse101/wwwhero/internal/repository"
)

// Source resolves read-only locations
type Source interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	GetLocation(ctx context.Context, locationID int64) (*domain.Location, error)
}

// Service defines travel operations
type Service interface {
	Travel(ctx context.Context, characterID, locationID int64) (*domain.Location, error)
	Available(ctx context.Context, level int) ([]domain.Location, error)
}

type service struct {
	repo      repository.Character
	locations Source
}

// NewService creates a travel service
func NewService(repo repository.Character, locations Source) Service {
	return &service{repo: repo, locations: locations}
}

func (s *service) Travel(ctx context.Context, characterID, locationID int64) (*domain.Location, error) {
	log := logger.FromContext(ctx)

	loc, err := s.locations.GetLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Lock the character so a concurrent level-up cannot interleave
	c, err := tx.GetCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}

	if !loc.IsActive {
		log.Warn(LogMsgTravelRejected, "characterID", characterID, "location", loc.Name, "reason", "inactive")
		return nil, fmt.Errorf(ErrMsgLocationInactive, domain.ErrLocationInactive, loc.Name)
	}
	if loc.MinLevel > c.Level {
		log.Warn(LogMsgTravelRejected, "characterID", characterID, "location", loc.Name, "reason", "level")
		return nil, fmt.Errorf(ErrMsgLocationLocked, domain.ErrLocationLocked, loc.Name, loc.MinLevel)
	}

	if err := tx.SetCharacterLocation(ctx, domain.CharacterLocation{CharacterID: characterID, LocationID: loc.ID}); err != nil {
		return nil, fmt.Errorf(ErrMsgSetLocationFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	log.Info(LogMsgTraveled, "characterID", characterID, "location", loc.Name)
	return loc, nil
}

func (s *service) Available(ctx context.Context, level int) ([]domain.Location, error) {
	locations, err := s.locations.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListLocationsFailed, err)
	}

	var open []domain.Location
	for _, loc := range locations {
		if loc.Accessible(level) {
			open = append(open, loc)
		}
	}
	return open, nil
}
