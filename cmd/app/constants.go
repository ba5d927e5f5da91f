package main

// Console prompts and messages
const (
	PromptPlayer    = "Player name: "
	PromptCharacter = "Character name: "
	PromptPick      = "Pick a character number, or type a new name: "
	PromptCommand   = "> "

	MsgWelcome         = "Welcome to wwwhero."
	MsgYourCharacters  = "Your characters:"
	MsgCreated         = "Created %s.\n"
	MsgPlaying         = "Playing as %s.\n"
	MsgBye             = "Bye."
	MsgUnknownCommand  = "Unknown command %q. Type help for commands.\n"
	MsgLevelUp         = "%s reached level %d! +%d HP, +%d DMG, +%d luck. Inventory space %d.\n"
	MsgLoot            = "Found %s (x%d).\n"
	MsgGold            = "Found %d gold.\n"
	MsgDropOne         = "Dropped one %s, %d left.\n"
	MsgDropAll         = "Dropped %s.\n"
	MsgTravel          = "Travelled to %s.\n"
	MsgNoItems         = "Inventory is empty."
	MsgUsage           = "Usage: %s\n"
	MsgNoSuchCharacter = "There is no character %d.\n"

	MsgCooldown       = "You must wait %d more seconds.\n"
	MsgMaxLevel       = "You are already at the maximum level."
	MsgInventoryFull  = "Your inventory is full."
	MsgNotDroppable   = "That item cannot be dropped."
	MsgNotFound       = "Not found."
	MsgNoLocation     = "You are nowhere. Travel somewhere first."
	MsgLocationLocked = "You are not strong enough to go there."
	MsgInvalidName    = "That name is not allowed."
	MsgNameTaken      = "You already have a character with that name."
	MsgError          = "Something went wrong: %v\n"
)

// Help lists the console commands
const Help = `Commands:
  level            level up
  show             show your character sheet
  search           search the current location for loot
  inv              list your inventory
  drop <id|name> [all]
                   drop one of an item, or all of it
  travel [id]      list locations, or travel to one
  exit             quit`

const dropUsage = "drop <id|name> [all]"

// playerNamespace seeds the stable user id derived from a player name
const playerNamespace = "6d1c7f0e-6a53-4b0e-9c55-8e5b7b0f2a11"
