package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric exported by the engine
const Namespace = "wwwhero"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Engine metric names
const (
	MetricNameLevelUps           = "level_ups_total"
	MetricNameLevelUpRejections  = "level_up_rejections_total"
	MetricNameLootGenerated      = "loot_generated_total"
	MetricNameGoldAwarded        = "gold_awarded_total"
	MetricNameItemsDropped       = "items_dropped_total"
	MetricNameCharactersCreated  = "characters_created_total"
	MetricNameLootRejections     = "loot_rejections_total"
	MetricNameCatalogSyncSkipped = "catalog_sync_skipped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Engine metric help text
const (
	HelpTextLevelUps           = "Total number of successful level-ups"
	HelpTextLevelUpRejections  = "Total number of rejected level-ups by reason"
	HelpTextLootGenerated      = "Total number of loot rolls applied to an inventory"
	HelpTextGoldAwarded        = "Total gold added to inventories"
	HelpTextItemsDropped       = "Total number of drop operations by mode"
	HelpTextCharactersCreated  = "Total number of characters created"
	HelpTextLootRejections     = "Total number of rejected loot rolls by reason"
	HelpTextCatalogSyncSkipped = "Total number of catalog syncs skipped because the file was unchanged"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelReason   = "reason"
	LabelItemType = "item_type"
	LabelRarity   = "rarity"
	LabelMode     = "mode"
	LabelConfig   = "config"
)

// Label values
const (
	ReasonCooldown      = "cooldown"
	ReasonMaxLevel      = "max_level"
	ReasonInventoryFull = "inventory_full"
	ReasonNoBlueprint   = "no_blueprint"
	ReasonOther         = "other"

	DropModeOne = "one"
	DropModeAll = "all"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
