// Package progression implements character leveling: the cooldown gate, the
// level cap, the randomized attribute upgrade and the cooldown reschedule.
package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/wwwhero/internal/cooldown"
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/inventory"
	"github.com/osse101/wwwhero/internal/logger"
	"github.com/osse101/wwwhero/internal/metrics"
	"github.com/osse101/wwwhero/internal/random"
	"github.com/osse101/wwwhero/internal/repository"
)

// Result describes a successful level-up
type Result struct {
	Character  domain.Character           `json:"character"`
	Attributes domain.CharacterAttributes `json:"attributes"`
	Upgrade    Upgrade                    `json:"upgrade"`
	Cooldown   domain.CharacterCooldown   `json:"cooldown"`
	MaxSpace   int                        `json:"max_space"`
}

// Service defines the leveling business logic
type Service interface {
	// LevelUp raises the character one level. Every write commits together
	// or not at all; rejected calls leave the character untouched.
	LevelUp(ctx context.Context, characterID int64, now time.Time) (*Result, error)
}

type service struct {
	repo        repository.Character
	cooldowns   cooldown.Service
	inventories inventory.Service
	roller      random.Source
}

// NewService creates a progression service. roller must be safe for concurrent use.
func NewService(repo repository.Character, cooldowns cooldown.Service, inventories inventory.Service, roller random.Source) Service {
	return &service{
		repo:        repo,
		cooldowns:   cooldowns,
		inventories: inventories,
		roller:      roller,
	}
}

func (s *service) LevelUp(ctx context.Context, characterID int64, now time.Time) (*Result, error) {
	log := logger.FromContext(ctx)

	res, err := s.levelUp(ctx, characterID, now)
	if err != nil {
		if isRejection(err) {
			log.Warn(LogMsgLevelUpRejected, "characterID", characterID, "error", err)
		}
		metrics.RecordLevelUpRejected(err)
		return nil, err
	}

	metrics.LevelUps.Inc()
	log.Info(LogMsgLevelUp,
		"characterID", characterID,
		"level", res.Character.Level,
		"hpIncrease", res.Upgrade.HPIncrease,
		"dmgIncrease", res.Upgrade.DmgIncrease,
		"until", res.Cooldown.Until)
	return res, nil
}

func (s *service) levelUp(ctx context.Context, characterID int64, now time.Time) (*Result, error) {
	// Unlocked check rejects most repeat calls without opening a tx
	onCooldown, remaining, err := s.cooldowns.Check(ctx, characterID, domain.CooldownLevel, now)
	if err != nil {
		return nil, err
	}
	if onCooldown {
		return nil, domain.CooldownActiveError{Type: domain.CooldownLevel, Until: now.Add(remaining), Remaining: remaining}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	character, err := tx.GetCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCharacterFailed, err)
	}

	// Recheck under the character lock
	if err := s.cooldowns.Gate(ctx, tx, characterID, domain.CooldownLevel, now); err != nil {
		return nil, err
	}

	newLevel := character.Level + 1
	if newLevel > domain.MaxLevel {
		return nil, fmt.Errorf(ErrMsgMaxLevel, domain.ErrMaxLevel, character.Name, character.Level)
	}

	attrs, err := tx.GetAttributes(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAttributesFailed, err)
	}
	if attrs == nil {
		fresh := domain.NewCharacterAttributes(characterID)
		attrs = &fresh
	}

	upgrade := rollUpgrade(s.roller)
	upgrade.apply(attrs)

	if err := tx.UpdateCharacterLevel(ctx, characterID, newLevel, now); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateLevelFailed, err)
	}
	if err := tx.SaveAttributes(ctx, *attrs); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveAttributesFailed, err)
	}

	until := cooldown.NextLevelUntil(now, newLevel)
	if err := s.cooldowns.Schedule(ctx, tx, characterID, domain.CooldownLevel, until); err != nil {
		return nil, err
	}

	inv, err := tx.GetInventoryByCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	if err := s.inventories.GrowCapacity(ctx, tx, inv); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTxFailed, err)
	}

	character.Level = newLevel
	character.UpdatedAt = now
	return &Result{
		Character:  *character,
		Attributes: *attrs,
		Upgrade:    upgrade,
		Cooldown:   domain.CharacterCooldown{CharacterID: characterID, Type: domain.CooldownLevel, Until: until},
		MaxSpace:   inv.MaxSpace,
	}, nil
}

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrOnCooldown) || errors.Is(err, domain.ErrMaxLevel)
}
