package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/wwwhero/internal/domain"
)

// Character defines the interface for character persistence
type Character interface {
	BeginTx(ctx context.Context) (GameTx, error)

	GetCharacter(ctx context.Context, characterID int64) (*domain.Character, error)
	ListCharacters(ctx context.Context, userID uuid.UUID) ([]domain.Character, error)
	GetAttributes(ctx context.Context, characterID int64) (*domain.CharacterAttributes, error)

	GetCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) (*domain.CharacterCooldown, error)
	DeleteCooldown(ctx context.Context, characterID int64, cooldownType domain.CooldownType) error

	GetCharacterLocation(ctx context.Context, characterID int64) (*domain.CharacterLocation, error)
	SetCharacterLocation(ctx context.Context, loc domain.CharacterLocation) error
}
