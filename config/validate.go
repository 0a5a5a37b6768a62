package config

import (
	"path/filepath"
	"slices"
	"strings"
)

// builtinSounds are completion sounds bundled with the program. Anything
// else must be a path to a supported audio file.
var builtinSounds = []string{"bell", "loud_bell", "chime"}

var validSoundExts = []string{".mp3", ".ogg", ".flac", ".wav"}

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if c.SessionMinutes <= 0 {
		return errInvalidDuration.Fmt("session", c.SessionMinutes)
	}

	if c.BreakMinutes <= 0 {
		return errInvalidDuration.Fmt("break", c.BreakMinutes)
	}

	if c.CoinRate <= 0 {
		return errInvalidCoinRate.Fmt(c.CoinRate)
	}

	if c.InactiveThreshold <= 0 {
		return errInvalidInterval.Fmt("inactive_threshold", c.InactiveThreshold)
	}

	if c.GracePeriod <= 0 {
		return errInvalidInterval.Fmt("grace_period", c.GracePeriod)
	}

	if c.HeartbeatInterval <= 0 {
		return errInvalidInterval.Fmt("heartbeat_interval", c.HeartbeatInterval)
	}

	return c.validateSound()
}

// validateSound checks the completion sound. It handles both built-in and
// custom sounds.
func (c *Config) validateSound() error {
	sound := c.CompletionSound
	if sound == "" {
		return nil
	}

	if slices.Contains(builtinSounds, sound) {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(sound))
	if !slices.Contains(validSoundExts, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	return nil
}
