// Package character manages a user's roster: creating characters with their
// starting attributes, inventory and location, and reading them back.
package character

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/wwwhero/internal/cooldown"
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/inventory"
	"github.com/osse101/wwwhero/internal/logger"
	"github.com/osse101/wwwhero/internal/metrics"
	"github.com/osse101/wwwhero/internal/repository"
	"github.com/osse101/wwwhero/internal/validation"
)

// LocationSource resolves read-only locations
type LocationSource interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	GetLocation(ctx context.Context, locationID int64) (*domain.Location, error)
}

// CreateRequest is the input for Create
type CreateRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Name   string    `json:"name" validate:"required,min=1,max=64,charname"`
}

// Sheet is everything a character screen shows
type Sheet struct {
	Character            domain.Character           `json:"character"`
	Attributes           domain.CharacterAttributes `json:"attributes"`
	Location             *domain.Location           `json:"location,omitempty"`
	Inventory            domain.Inventory           `json:"inventory"`
	ItemsUsed            int                        `json:"items_used"`
	LevelCooldownSeconds int                        `json:"level_cooldown_seconds"`
}

// Service defines the character roster operations
type Service interface {
	Create(ctx context.Context, req CreateRequest, now time.Time) (*domain.Character, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Character, error)
	Get(ctx context.Context, userID uuid.UUID, characterID int64) (*domain.Character, error)
	Sheet(ctx context.Context, userID uuid.UUID, characterID int64, now time.Time) (*Sheet, error)
}

type service struct {
	repo        repository.Character
	locations   LocationSource
	cooldowns   cooldown.Service
	inventories inventory.Service
}

// NewService creates a character service
func NewService(repo repository.Character, locations LocationSource, cooldowns cooldown.Service, inventories inventory.Service) Service {
	return &service{
		repo:        repo,
		locations:   locations,
		cooldowns:   cooldowns,
		inventories: inventories,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, now time.Time) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	if err := validation.Default().ValidateStruct(req); err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidRequest, domain.ErrInvalidInput, validation.Summary(err))
	}

	start, err := s.startingLocation(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	c := &domain.Character{
		UserID:    req.UserID,
		Name:      req.Name,
		Level:     domain.StartingLevel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.InsertCharacter(ctx, c); err != nil {
		if errors.Is(err, domain.ErrCharacterNameTaken) {
			log.Warn(LogMsgNameTaken, "userID", req.UserID, "name", req.Name)
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgInsertCharFailed, err)
	}

	if err := tx.SaveAttributes(ctx, domain.NewCharacterAttributes(c.ID)); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveAttrsFailed, err)
	}

	inv := &domain.Inventory{CharacterID: c.ID, MaxSpace: domain.DefaultInventorySpace}
	if err := tx.InsertInventory(ctx, inv); err != nil {
		return nil, fmt.Errorf(ErrMsgInsertInvFailed, err)
	}

	if start != nil {
		if err := tx.SetCharacterLocation(ctx, domain.CharacterLocation{CharacterID: c.ID, LocationID: start.ID}); err != nil {
			return nil, fmt.Errorf(ErrMsgPlaceFailed, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	metrics.CharactersCreated.Inc()
	log.Info(LogMsgCharacterCreated, "characterID", c.ID, "userID", c.UserID, "name", c.Name)
	return c, nil
}

// startingLocation is the lowest-level active location, or nil when none exist
func (s *service) startingLocation(ctx context.Context) (*domain.Location, error) {
	locations, err := s.locations.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListLocationsFailed, err)
	}
	var best *domain.Location
	for i := range locations {
		loc := &locations[i]
		if !loc.IsActive {
			continue
		}
		if best == nil || loc.MinLevel < best.MinLevel || (loc.MinLevel == best.MinLevel && loc.ID < best.ID) {
			best = loc
		}
	}
	return best, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]domain.Character, error) {
	characters, err := s.repo.ListCharacters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListFailed, err)
	}
	return characters, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID, characterID int64) (*domain.Character, error) {
	c, err := s.repo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		logger.FromContext(ctx).Warn(LogMsgForeignCharacter, "characterID", characterID, "userID", userID)
		return nil, domain.ErrCharacterNotFound
	}
	return c, nil
}

func (s *service) Sheet(ctx context.Context, userID uuid.UUID, characterID int64, now time.Time) (*Sheet, error) {
	c, err := s.Get(ctx, userID, characterID)
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{Character: *c, Attributes: domain.NewCharacterAttributes(c.ID)}

	attrs, err := s.repo.GetAttributes(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAttributesFailed, err)
	}
	if attrs != nil {
		sheet.Attributes = *attrs
	}

	placement, err := s.repo.GetCharacterLocation(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLocationFailed, err)
	}
	if placement != nil {
		loc, err := s.locations.GetLocation(ctx, placement.LocationID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetLocationFailed, err)
		}
		sheet.Location = loc
	}

	view, err := s.inventories.List(ctx, characterID)
	if err != nil {
		return nil, err
	}
	sheet.Inventory = view.Inventory
	sheet.ItemsUsed = view.Used()

	active, remaining, err := s.cooldowns.Check(ctx, characterID, domain.CooldownLevel, now)
	if err != nil {
		return nil, err
	}
	if active {
		sheet.LevelCooldownSeconds = cooldown.RemainingSeconds(now.Add(remaining), now)
	}

	return sheet, nil
}
