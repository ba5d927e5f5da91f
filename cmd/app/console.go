package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/wwwhero/internal/bootstrap"
	"github.com/osse101/wwwhero/internal/character"
	"github.com/osse101/wwwhero/internal/cooldown"
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/logger"
)

// console is a line-oriented driver over the engine services
type console struct {
	svc   *bootstrap.Services
	in    *bufio.Scanner
	out   io.Writer
	clock func() time.Time

	userID uuid.UUID
	hero   domain.Character
}

func newConsole(svc *bootstrap.Services, in io.Reader, out io.Writer, clock func() time.Time) *console {
	return &console{svc: svc, in: bufio.NewScanner(in), out: out, clock: clock}
}

// Run plays until exit, end of input or ctx is cancelled
func (c *console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, MsgWelcome)

	player, ok := c.prompt(PromptPlayer)
	if !ok {
		return nil
	}
	c.userID = playerID(player)

	ok, err := c.chooseCharacter(ctx)
	if err != nil || !ok {
		return err
	}
	fmt.Fprintf(c.out, MsgPlaying, c.hero.Name)

	for ctx.Err() == nil {
		line, ok := c.prompt(PromptCommand)
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if quit := c.dispatch(logger.WithNewRequestID(ctx), fields); quit {
			fmt.Fprintln(c.out, MsgBye)
			return nil
		}
	}
	return nil
}

// playerID maps a player name to a stable user id
func playerID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.MustParse(playerNamespace), []byte(strings.ToLower(strings.TrimSpace(name))))
}

func (c *console) prompt(text string) (string, bool) {
	fmt.Fprint(c.out, text)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// chooseCharacter selects an existing character or creates one. It returns
// false when input ends first.
func (c *console) chooseCharacter(ctx context.Context) (bool, error) {
	heroes, err := c.svc.Characters.List(ctx, c.userID)
	if err != nil {
		return false, err
	}

	for {
		var answer string
		var ok bool
		if len(heroes) == 0 {
			answer, ok = c.prompt(PromptCharacter)
		} else {
			fmt.Fprintln(c.out, MsgYourCharacters)
			for i, h := range heroes {
				fmt.Fprintf(c.out, "  %d. %s\n", i+1, h)
			}
			answer, ok = c.prompt(PromptPick)
		}
		if !ok {
			return false, nil
		}

		if n, err := strconv.Atoi(answer); err == nil {
			if n < 1 || n > len(heroes) {
				fmt.Fprintf(c.out, MsgNoSuchCharacter, n)
				continue
			}
			c.hero = heroes[n-1]
			return true, nil
		}

		created, err := c.svc.Characters.Create(ctx, character.CreateRequest{UserID: c.userID, Name: answer}, c.clock())
		if err != nil {
			c.report(err)
			continue
		}
		fmt.Fprintf(c.out, MsgCreated, created.Name)
		c.hero = *created
		return true, nil
	}
}

// dispatch runs one command and reports whether the player quit
func (c *console) dispatch(ctx context.Context, fields []string) bool {
	switch strings.ToLower(fields[0]) {
	case "level", "l":
		c.levelUp(ctx)
	case "show", "s":
		c.show(ctx)
	case "search", "x":
		c.search(ctx)
	case "inv", "i":
		c.inventory(ctx)
	case "drop", "d":
		c.drop(ctx, fields[1:])
	case "travel", "t":
		c.travel(ctx, fields[1:])
	case "help", "h", "?":
		fmt.Fprintln(c.out, Help)
	case "exit", "quit", "q":
		return true
	default:
		fmt.Fprintf(c.out, MsgUnknownCommand, fields[0])
	}
	return false
}

func (c *console) levelUp(ctx context.Context) {
	res, err := c.svc.Progression.LevelUp(ctx, c.hero.ID, c.clock())
	if err != nil {
		c.report(err)
		return
	}
	c.hero = res.Character
	fmt.Fprintf(c.out, MsgLevelUp, res.Character.Name, res.Character.Level,
		res.Upgrade.HPIncrease, res.Upgrade.DmgIncrease, res.Upgrade.LuckIncrease, res.MaxSpace)
}

func (c *console) show(ctx context.Context) {
	sheet, err := c.svc.Characters.Sheet(ctx, c.userID, c.hero.ID, c.clock())
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, sheet.Character)
	fmt.Fprintln(c.out, " ", sheet.Attributes)
	if sheet.Location != nil {
		fmt.Fprintf(c.out, "  At %s (%s)\n", sheet.Location.Name, sheet.Location.Type)
	}
	fmt.Fprintf(c.out, "  Inventory %d/%d\n", sheet.ItemsUsed, sheet.Inventory.MaxSpace)
	if sheet.LevelCooldownSeconds > 0 {
		fmt.Fprintf(c.out, "  Next level in %ds\n", sheet.LevelCooldownSeconds)
	}
}

func (c *console) search(ctx context.Context) {
	drop, err := c.svc.Loot.Search(ctx, c.hero.ID, c.clock())
	if err != nil {
		c.report(err)
		return
	}
	if drop.Blueprint.ItemType == domain.ItemTypeGold {
		fmt.Fprintf(c.out, MsgGold, drop.Quantity)
		return
	}
	fmt.Fprintf(c.out, MsgLoot, drop.Item.Name, drop.Quantity)
}

func (c *console) inventory(ctx context.Context) {
	view, err := c.svc.Inventory.List(ctx, c.hero.ID)
	if err != nil {
		c.report(err)
		return
	}
	if len(view.Entries) == 0 {
		fmt.Fprintln(c.out, MsgNoItems)
		return
	}
	fmt.Fprintf(c.out, "Inventory %d/%d\n", view.Used(), view.Inventory.MaxSpace)
	for _, e := range view.Entries {
		fmt.Fprintf(c.out, "  [%d] %s (%s, level %d)\n", e.Item.ID, e.Item, e.Item.Rarity, e.Item.Level)
	}
}

func (c *console) drop(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(c.out, MsgUsage, dropUsage)
		return
	}
	dropAll := len(args) > 1 && strings.EqualFold(args[len(args)-1], "all")
	if dropAll {
		args = args[:len(args)-1]
	}

	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || len(args) > 1 {
		var found bool
		itemID, found, err = c.findItem(ctx, strings.Join(args, " "))
		if err != nil {
			c.report(err)
			return
		}
		if !found {
			fmt.Fprintln(c.out, MsgNotFound)
			return
		}
	}

	item, err := c.svc.Inventory.Drop(ctx, c.hero.ID, itemID, dropAll)
	if err != nil {
		c.report(err)
		return
	}
	if item.Attached() {
		fmt.Fprintf(c.out, MsgDropOne, item.Name, item.Amount)
		return
	}
	fmt.Fprintf(c.out, MsgDropAll, item.Name)
}

// findItem returns the first held item whose blueprint matches name or one of its aliases
func (c *console) findItem(ctx context.Context, name string) (int64, bool, error) {
	bpName, ok := c.svc.Names.ResolveName(name)
	if !ok {
		return 0, false, nil
	}
	view, err := c.svc.Inventory.List(ctx, c.hero.ID)
	if err != nil {
		return 0, false, err
	}
	for _, e := range view.Entries {
		if strings.EqualFold(e.Blueprint.Name, bpName) {
			return e.Item.ID, true, nil
		}
	}
	return 0, false, nil
}

func (c *console) travel(ctx context.Context, args []string) {
	if len(args) == 0 {
		locations, err := c.svc.Locations.Available(ctx, c.hero.Level)
		if err != nil {
			c.report(err)
			return
		}
		for _, loc := range locations {
			fmt.Fprintf(c.out, "  [%d] %s (level %d+)\n", loc.ID, loc.Name, loc.MinLevel)
		}
		return
	}
	locationID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(c.out, MsgUsage, "travel [id]")
		return
	}
	loc, err := c.svc.Locations.Travel(ctx, c.hero.ID, locationID)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, MsgTravel, loc.Name)
}

// report renders a domain error for the player
func (c *console) report(err error) {
	var cd domain.CooldownActiveError
	switch {
	case errors.As(err, &cd):
		fmt.Fprintf(c.out, MsgCooldown, cooldown.RemainingSeconds(cd.Until, c.clock()))
	case errors.Is(err, domain.ErrMaxLevel):
		fmt.Fprintln(c.out, MsgMaxLevel)
	case errors.Is(err, domain.ErrInventoryFull):
		fmt.Fprintln(c.out, MsgInventoryFull)
	case errors.Is(err, domain.ErrNotDroppable):
		fmt.Fprintln(c.out, MsgNotDroppable)
	case errors.Is(err, domain.ErrNoLocation):
		fmt.Fprintln(c.out, MsgNoLocation)
	case errors.Is(err, domain.ErrLocationLocked), errors.Is(err, domain.ErrLocationInactive):
		fmt.Fprintln(c.out, MsgLocationLocked)
	case errors.Is(err, domain.ErrCharacterNameTaken):
		fmt.Fprintln(c.out, MsgNameTaken)
	case errors.Is(err, domain.ErrInvalidInput):
		fmt.Fprintln(c.out, MsgInvalidName)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrItemNotInInventory):
		fmt.Fprintln(c.out, MsgNotFound)
	default:
		fmt.Fprintf(c.out, MsgError, err)
	}
}
