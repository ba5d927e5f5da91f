// Package naming produces display names for generated items and maps
// player-typed names back to catalog blueprints.
package naming

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/logger"
	"github.com/osse101/wwwhero/internal/random"
	"github.com/osse101/wwwhero/internal/validation"
)

// AliasPool contains alias variants for a blueprint
type AliasPool struct {
	Default []string            `json:"default"`
	Themes  map[string][]string `json:"themes"`
}

// ThemePeriod defines the active period for a theme
type ThemePeriod struct {
	Start string `json:"start"` // MM-DD
	End   string `json:"end"`   // MM-DD
}

// Resolver handles display names and name lookups
type Resolver interface {
	// DisplayName picks an alias for the blueprint, preferring the theme
	// active at now, and prefixes non-common rarities
	DisplayName(bp domain.ItemBlueprint, rarity domain.Rarity, now time.Time) string

	// ResolveName maps a blueprint name or any of its aliases to the blueprint name
	ResolveName(name string) (blueprintName string, ok bool)

	// RegisterBlueprint makes a blueprint resolvable by name
	RegisterBlueprint(bp domain.ItemBlueprint)
}

type resolver struct {
	mu sync.RWMutex

	// lower-cased name or alias -> blueprint name
	lookup map[string]string

	// alias pools keyed by blueprint name
	aliases map[string]AliasPool
	themes  map[string]ThemePeriod

	aliasesPath string
	schemas     validation.SchemaValidator
	roller      random.Source
}

// NewResolver creates a resolver over the aliases file at aliasesPath.
// A missing file yields a resolver that uses blueprint names as they are.
// schemas may be nil to skip schema validation.
func NewResolver(aliasesPath string, schemas validation.SchemaValidator, roller random.Source) (Resolver, error) {
	r := &resolver{
		lookup:      make(map[string]string),
		aliases:     make(map[string]AliasPool),
		themes:      make(map[string]ThemePeriod),
		aliasesPath: aliasesPath,
		schemas:     schemas,
		roller:      roller,
	}

	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *resolver) RegisterBlueprint(bp domain.ItemBlueprint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerUnlocked(bp.Name)
}

func (r *resolver) registerUnlocked(name string) {
	if name == "" {
		return
	}
	r.lookup[strings.ToLower(name)] = name
	pool := r.aliases[name]
	for _, alias := range pool.Default {
		r.lookup[strings.ToLower(alias)] = name
	}
	for _, themed := range pool.Themes {
		for _, alias := range themed {
			r.lookup[strings.ToLower(alias)] = name
		}
	}
}

func (r *resolver) ResolveName(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bpName, ok := r.lookup[strings.ToLower(strings.TrimSpace(name))]
	return bpName, ok
}

func (r *resolver) DisplayName(bp domain.ItemBlueprint, rarity domain.Rarity, now time.Time) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := bp.Name
	pool, ok := r.aliases[bp.Name]
	if ok {
		var candidates []string
		if theme := r.activeThemeUnlocked(now); theme != "" {
			candidates = pool.Themes[theme]
		}
		if len(candidates) == 0 {
			candidates = pool.Default
		}
		if len(candidates) > 0 {
			name = candidates[r.roller.Intn(len(candidates))]
		}
	}
	return formatWithRarity(name, rarity)
}

// formatWithRarity title-cases name and prefixes any rarity above COMMON
func formatWithRarity(name string, rarity domain.Rarity) string {
	if rarity.Valid() && rarity != domain.RarityCommon {
		name = rarity.String() + " " + name
	}
	// Casers are not safe for concurrent use
	return cases.Title(language.English).String(name)
}

// activeTheme returns the theme whose period contains now, or ""
func (r *resolver) activeTheme(now time.Time) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeThemeUnlocked(now)
}

// activeThemeUnlocked returns the active theme (caller must hold lock)
func (r *resolver) activeThemeUnlocked(now time.Time) string {
	for theme, period := range r.themes {
		if isInPeriod(now, period.Start, period.End) {
			return theme
		}
	}
	return ""
}

// isInPeriod checks if now is within [start, end], wrapping over new year
func isInPeriod(now time.Time, startStr, endStr string) bool {
	startMonth, startDay := parseMonthDay(startStr)
	endMonth, endDay := parseMonthDay(endStr)

	if startMonth == 0 || endMonth == 0 {
		return false
	}

	current := int(now.Month())*DateComparisonMultiplier + now.Day()
	start := startMonth*DateComparisonMultiplier + startDay
	end := endMonth*DateComparisonMultiplier + endDay

	if start <= end {
		return current >= start && current <= end
	}
	return current >= start || current <= end
}

// parseMonthDay parses "MM-DD"; (0, 0) on malformed input
func parseMonthDay(s string) (month, day int) {
	parts := strings.Split(s, DateSeparator)
	if len(parts) != DatePartsCount {
		return 0, 0
	}
	month, errM := strconv.Atoi(parts[0])
	day, errD := strconv.Atoi(parts[1])
	if errM != nil || errD != nil {
		return 0, 0
	}
	return month, day
}

// aliasesFile is the on-disk layout of the aliases config
type aliasesFile struct {
	Version string                 `json:"version"`
	Schema  string                 `json:"schema"`
	Aliases map[string]AliasPool   `json:"aliases"`
	Themes  map[string]ThemePeriod `json:"themes"`
}

// reload re-reads the aliases file
func (r *resolver) reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.aliasesPath == "" {
		return nil
	}
	cfg, err := r.loadAliases()
	if err != nil {
		return fmt.Errorf(ErrMsgLoadAliasesFailed, err)
	}
	if cfg == nil {
		return nil
	}

	if cfg.Aliases != nil {
		r.aliases = cfg.Aliases
	}
	if cfg.Themes != nil {
		r.themes = cfg.Themes
	}

	// Re-register known names so new aliases resolve
	names := make([]string, 0, len(r.lookup))
	for _, name := range r.lookup {
		names = append(names, name)
	}
	for name := range r.aliases {
		names = append(names, name)
	}
	for _, name := range names {
		r.registerUnlocked(name)
	}

	logger.FromContext(context.Background()).Debug(LogMsgAliasesLoaded,
		"path", r.aliasesPath, "pools", len(r.aliases), "themes", len(r.themes))
	return nil
}

// loadAliases returns nil, nil when the file does not exist
func (r *resolver) loadAliases() (*aliasesFile, error) {
	data, err := os.ReadFile(r.aliasesPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(ErrMsgReadAliasesFailed, err)
	}

	if r.schemas != nil {
		if err := r.schemas.ValidateBytes(data, AliasesSchemaFile); err != nil {
			return nil, fmt.Errorf(ErrMsgSchemaCheckFailed, r.aliasesPath, err)
		}
	}

	var cfg aliasesFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, r.aliasesPath, err)
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf(ErrMsgMissingVersion, r.aliasesPath)
	}
	if cfg.Schema != SchemaItemAliases {
		return nil, fmt.Errorf(ErrMsgInvalidSchema, r.aliasesPath, SchemaItemAliases, cfg.Schema)
	}
	return &cfg, nil
}
