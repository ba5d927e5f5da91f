package loot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/random"
)

func TestRollRarity_Table(t *testing.T) {
	tests := []struct {
		roll int
		want domain.Rarity
	}{
		{0, domain.RarityCommon},
		{19, domain.RarityCommon},
		{20, domain.RarityUncommon},
		{29, domain.RarityUncommon},
		{30, domain.RarityRare},
		{34, domain.RarityRare},
		{35, domain.RarityEpic},
		{36, domain.RarityEpic},
		{37, domain.RarityLegendary},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rollRarity(random.NewScripted(tt.roll)), "roll %d", tt.roll)
	}
}

func TestRollRarity_Distribution(t *testing.T) {
	roller := random.New(1)
	counts := make(map[domain.Rarity]int)
	const n = 38000
	for i := 0; i < n; i++ {
		counts[rollRarity(roller)]++
	}

	// expected 20000/10000/5000/2000/1000, allow 10%
	for _, rw := range RarityWeights {
		want := float64(n * rw.weight / 38)
		assert.InDelta(t, want, float64(counts[rw.rarity]), want*0.1, rw.rarity.String())
	}
}

func TestRollItemLevel_ClampedToOne(t *testing.T) {
	loc := domain.Location{MinLevel: 1}
	assert.Equal(t, 1, rollItemLevel(random.NewScripted(0), loc))
	assert.Equal(t, 2, rollItemLevel(random.NewScripted(2), loc))

	roller := random.New(3)
	for i := 0; i < 200; i++ {
		lvl := rollItemLevel(roller, domain.Location{MinLevel: 5})
		assert.GreaterOrEqual(t, lvl, 4)
		assert.LessOrEqual(t, lvl, 6)
	}
}

func TestRollDamage_Bounds(t *testing.T) {
	roller := random.New(11)
	for level := 1; level <= 10; level++ {
		for r := domain.RarityCommon; r <= domain.RarityLegendary; r++ {
			minDmg, maxDmg := rollDamage(roller, level, r)
			assert.GreaterOrEqual(t, minDmg, level+int(r))
			assert.LessOrEqual(t, minDmg, level*int(r)+level)
			assert.GreaterOrEqual(t, maxDmg, minDmg)
			assert.LessOrEqual(t, maxDmg, minDmg+(level+int(r))*2)
		}
	}
}

func TestRollStats_Weapon(t *testing.T) {
	sword := domain.ItemBlueprint{ItemType: domain.ItemTypeWeapon, BaseCost: 10}
	// rarity RARE, level 2, spread 2, min 7, bonus 4, max 9
	roller := random.NewScripted(30, 2, 2, 7, 4, 9)

	st := rollStats(roller, sword, domain.Location{MinLevel: 2})

	assert.Equal(t, stats{level: 2, rarity: domain.RarityRare, minDamage: 7, maxDamage: 9, cost: 60}, st)
	assert.Zero(t, roller.Remaining())
}

func TestRollStats_ArmorHasNoDamage(t *testing.T) {
	helmet := domain.ItemBlueprint{ItemType: domain.ItemTypeArmor, BaseCost: 8}
	st := rollStats(random.NewScripted(37, 3), helmet, domain.Location{MinLevel: 3})

	assert.Equal(t, stats{level: 3, rarity: domain.RarityLegendary, cost: 120}, st)
}

func TestRollGold_Bounds(t *testing.T) {
	roller := random.New(5)
	for i := 0; i < 500; i++ {
		g := rollGold(roller, 4)
		assert.GreaterOrEqual(t, g, 4)
		assert.LessOrEqual(t, g, 40)
	}
}
