package loot

import "github.com/osse101/wwwhero/internal/domain"

// rarityWeight pairs a rarity with its share of the roll table
type rarityWeight struct {
	rarity domain.Rarity
	weight int
}

// RarityWeights is the drop table for ARMOR, WEAPON and JUNK, most common first
var RarityWeights = []rarityWeight{
	{domain.RarityCommon, 20},
	{domain.RarityUncommon, 10},
	{domain.RarityRare, 5},
	{domain.RarityEpic, 2},
	{domain.RarityLegendary, 1},
}

// Item generation constants
const (
	// QuestItemLevel is the fixed level of quest items
	QuestItemLevel = 1

	// GoldMultiplier bounds a gold roll at [level, level*GoldMultiplier]
	GoldMultiplier = 10

	// ItemLevelSpread is how far an item level may deviate from the location's min level
	ItemLevelSpread = 1

	// MinItemLevel is the floor for rolled item levels
	MinItemLevel = 1
)

// Error message format constants
const (
	ErrMsgBeginTxFailed      = "failed to begin transaction: %w"
	ErrMsgCommitTxFailed     = "failed to commit loot: %w"
	ErrMsgGetInventoryFailed = "failed to get inventory: %w"
	ErrMsgGetCharacterFailed = "failed to get character: %w"
	ErrMsgGetLocationFailed  = "failed to get location: %w"
	ErrMsgListCatalogFailed  = "failed to list blueprints: %w"
	ErrMsgFindMergedFailed   = "failed to find merged item: %w"
	ErrMsgInsertItemFailed   = "failed to insert item: %w"
	ErrMsgUpdateItemFailed   = "failed to update item: %w"
	ErrMsgNoGoldBlueprint    = "%w: catalog has no GOLD blueprint"
	ErrMsgInventoryMismatch  = "%w: inventory %d does not belong to character %d"
)

// Log message constants
const (
	LogMsgLootGenerated = "Loot generated"
	LogMsgLootRejected  = "Loot rejected"
	LogMsgQuestFallback = "Quest item already held, awarding gold instead"
)
