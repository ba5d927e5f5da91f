package cooldown

// Config holds cooldown service configuration
type Config struct {
	// DevMode bypasses all cooldown gates when true. Cooldowns are still
	// written so the UI shows realistic timers.
	DevMode bool
}
