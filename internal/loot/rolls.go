package loot

import (
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/random"
)

// stats are the rolled properties of a non-gold, non-quest item
type stats struct {
	level     int
	rarity    domain.Rarity
	minDamage int
	maxDamage int
	cost      int
}

// selectBlueprint picks uniformly across the whole catalog, regardless of item type
func selectBlueprint(roller random.Source, catalog []domain.ItemBlueprint) domain.ItemBlueprint {
	return catalog[roller.Intn(len(catalog))]
}

// rollRarity performs weighted random selection over RarityWeights
func rollRarity(roller random.Source) domain.Rarity {
	total := 0
	for _, rw := range RarityWeights {
		total += rw.weight
	}

	roll := roller.Intn(total)

	cumulative := 0
	for _, rw := range RarityWeights {
		cumulative += rw.weight
		if roll < cumulative {
			return rw.rarity
		}
	}
	return domain.RarityCommon
}

// rollItemLevel is the location's min level +/- ItemLevelSpread, floored at MinItemLevel
func rollItemLevel(roller random.Source, location domain.Location) int {
	level := roller.IntRange(location.MinLevel-ItemLevelSpread, location.MinLevel+ItemLevelSpread)
	if level < MinItemLevel {
		return MinItemLevel
	}
	return level
}

// rollDamage returns the weapon damage range for an item of level and rarity
func rollDamage(roller random.Source, level int, rarity domain.Rarity) (int, int) {
	r := int(rarity)
	spread := roller.IntRange(1, level)
	minDamage := roller.IntRange(level+r, level*r+spread)
	bonus := roller.IntRange(1, (level+r)*2)
	maxDamage := roller.IntRange(minDamage, minDamage+bonus)
	return minDamage, maxDamage
}

// rollGold is the gold awarded to a character of level
func rollGold(roller random.Source, level int) int {
	return roller.IntRange(level, level*GoldMultiplier)
}

// rollStats rolls rarity, level, damage (weapons only) and cost for bp
func rollStats(roller random.Source, bp domain.ItemBlueprint, location domain.Location) stats {
	s := stats{rarity: rollRarity(roller)}
	s.level = rollItemLevel(roller, location)
	if bp.ItemType == domain.ItemTypeWeapon {
		s.minDamage, s.maxDamage = rollDamage(roller, s.level, s.rarity)
	}
	s.cost = itemCost(s.level, s.rarity, bp)
	return s
}

// itemCost scales the blueprint's base cost by level and rarity ordinal
func itemCost(level int, rarity domain.Rarity, bp domain.ItemBlueprint) int {
	return level * int(rarity) * bp.BaseCost
}
