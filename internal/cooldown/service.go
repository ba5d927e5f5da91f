// Package cooldown evaluates and schedules per-character action cooldowns.
// A cooldown is ACTIVE iff its stored until is after the caller-supplied now;
// nothing expires it except the passage of time.
package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/logger"
	"github.com/osse101/wwwhero/internal/repository"
)

// Service manages action cooldowns for characters
type Service interface {
	// Check reports whether the action is on cooldown at now (unlocked read)
	// Returns: (onCooldown bool, remaining time.Duration, error)
	Check(ctx context.Context, characterID int64, cooldownType domain.CooldownType, now time.Time) (bool, time.Duration, error)

	// Gate rechecks the cooldown inside tx, after the caller has locked the
	// character row, and returns a domain.CooldownActiveError if it is active
	Gate(ctx context.Context, tx repository.GameTx, characterID int64, cooldownType domain.CooldownType, now time.Time) error

	// Schedule upserts the cooldown row inside tx
	Schedule(ctx context.Context, tx repository.GameTx, characterID int64, cooldownType domain.CooldownType, until time.Time) error

	// Reset manually clears a cooldown (admin/testing)
	Reset(ctx context.Context, characterID int64, cooldownType domain.CooldownType) error
}

type service struct {
	repo   repository.Character
	config Config
}

// NewService creates a cooldown service over the character repository
func NewService(repo repository.Character, config Config) Service {
	return &service{repo: repo, config: config}
}

func (s *service) Check(ctx context.Context, characterID int64, cooldownType domain.CooldownType, now time.Time) (bool, time.Duration, error) {
	if !cooldownType.Valid() {
		return false, 0, fmt.Errorf(ErrMsgInvalidCooldownType, domain.ErrInvalidInput, cooldownType)
	}
	if s.config.DevMode {
		return false, 0, nil
	}

	cd, err := s.repo.GetCooldown(ctx, characterID, cooldownType)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	onCooldown, remaining := evaluate(cd, now)
	return onCooldown, remaining, nil
}

func (s *service) Gate(ctx context.Context, tx repository.GameTx, characterID int64, cooldownType domain.CooldownType, now time.Time) error {
	log := logger.FromContext(ctx)

	if s.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "type", cooldownType, "characterID", characterID)
		return nil
	}

	cd, err := tx.GetCooldown(ctx, characterID, cooldownType)
	if err != nil {
		return fmt.Errorf(ErrMsgGetCooldownTxFailed, err)
	}

	if onCooldown, remaining := evaluate(cd, now); onCooldown {
		log.Debug(LogMsgCooldownActive, "type", cooldownType, "characterID", characterID, "remaining", remaining)
		return domain.NewCooldownActiveError(*cd, now)
	}
	return nil
}

func (s *service) Schedule(ctx context.Context, tx repository.GameTx, characterID int64, cooldownType domain.CooldownType, until time.Time) error {
	if !cooldownType.Valid() {
		return fmt.Errorf(ErrMsgInvalidCooldownType, domain.ErrInvalidInput, cooldownType)
	}

	cd := domain.CharacterCooldown{CharacterID: characterID, Type: cooldownType, Until: until}
	if err := tx.UpsertCooldown(ctx, cd); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCooldownScheduled, "type", cooldownType, "characterID", characterID, "until", until)
	return nil
}

func (s *service) Reset(ctx context.Context, characterID int64, cooldownType domain.CooldownType) error {
	if err := s.repo.DeleteCooldown(ctx, characterID, cooldownType); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgCooldownReset, "type", cooldownType, "characterID", characterID)
	return nil
}
