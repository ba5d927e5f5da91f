package domain

// Progression rules
const (
	// MaxLevel is the highest level a character can reach
	MaxLevel = 20

	// StartingLevel is the level of a freshly created character
	StartingLevel = 1

	// LevelUpPoints is the pool split between hp and dmg on every level-up
	LevelUpPoints = 25

	// MinHPIncrease and MaxHPIncrease bound the hp share of LevelUpPoints
	MinHPIncrease = 1
	MaxHPIncrease = LevelUpPoints - 1
)

// Attribute defaults applied when attributes are first created
const (
	DefaultMaxHP = 10
	DefaultHP    = 10
	DefaultDmg   = 1
	DefaultLuck  = 1
)

// Inventory rules
const (
	// DefaultInventorySpace is the capacity of a new inventory
	DefaultInventorySpace = 20

	// CapacityGrowthPerLevel is added to max_space on each level-up
	CapacityGrowthPerLevel = 1
)

// Character naming constraints
const (
	MaxCharacterNameLength = 64
)
