package metrics

import (
	"errors"

	"github.com/osse101/wwwhero/internal/domain"
)

// RecordLevelUpRejected counts a failed level-up under the reason matching err
func RecordLevelUpRejected(err error) {
	LevelUpRejections.WithLabelValues(reasonFor(err)).Inc()
}

// RecordLootRejected counts a failed loot roll under the reason matching err
func RecordLootRejected(err error) {
	LootRejections.WithLabelValues(reasonFor(err)).Inc()
}

// RecordLoot counts an applied loot roll; gold deltas also feed GoldAwarded
func RecordLoot(bp domain.ItemBlueprint, item domain.Item, quantity int) {
	LootGenerated.WithLabelValues(string(bp.ItemType), item.Rarity.String()).Inc()
	if bp.ItemType == domain.ItemTypeGold && quantity > 0 {
		GoldAwarded.Add(float64(quantity))
	}
}

// RecordDrop counts a drop operation
func RecordDrop(dropAll bool) {
	if dropAll {
		ItemsDropped.WithLabelValues(DropModeAll).Inc()
		return
	}
	ItemsDropped.WithLabelValues(DropModeOne).Inc()
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrOnCooldown):
		return ReasonCooldown
	case errors.Is(err, domain.ErrMaxLevel):
		return ReasonMaxLevel
	case errors.Is(err, domain.ErrInventoryFull):
		return ReasonInventoryFull
	case errors.Is(err, domain.ErrNoBlueprint):
		return ReasonNoBlueprint
	default:
		return ReasonOther
	}
}
