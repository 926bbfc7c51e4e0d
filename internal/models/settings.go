package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/plantpal/internal/constants"
)

// Settings holds the engine tunables
type Settings struct {
	Timezone            string `json:"timezone"`              // IANA timezone name, or "Local"
	SproutThreshold     int    `json:"sprout_threshold"`      // growth points for seedling -> sprout
	BloomThreshold      int    `json:"bloom_threshold"`       // growth points for sprout -> bloom
	WiltThreshold       int    `json:"wilt_threshold"`        // missed days before the plant wilts
	NeglectPenaltyUnit  int    `json:"neglect_penalty_unit"`  // points lost per missed day on wilting
	WiltRecoveryPoints  int    `json:"wilt_recovery_points"`  // points needed to leave wilt
	CareCooldownMin     int    `json:"care_cooldown_min"`     // per-action cooldown in minutes
	MusicFreshnessHours int    `json:"music_freshness_hours"` // how long a music mood counts toward journaling
}

// DefaultSettings returns the settings seeded on init
func DefaultSettings() Settings {
	return Settings{
		Timezone:            constants.DefaultTimezone,
		SproutThreshold:     constants.DefaultSproutThreshold,
		BloomThreshold:      constants.DefaultBloomThreshold,
		WiltThreshold:       constants.DefaultWiltThreshold,
		NeglectPenaltyUnit:  constants.DefaultNeglectPenaltyUnit,
		WiltRecoveryPoints:  constants.DefaultWiltRecoveryPoints,
		CareCooldownMin:     constants.DefaultCareCooldownMin,
		MusicFreshnessHours: constants.DefaultMusicFreshnessHours,
	}
}

// CareCooldown returns the cooldown as a duration
func (s Settings) CareCooldown() time.Duration {
	return time.Duration(s.CareCooldownMin) * time.Minute
}

// MusicFreshness returns how long a music estimate stays usable
func (s Settings) MusicFreshness() time.Duration {
	return time.Duration(s.MusicFreshnessHours) * time.Hour
}

// Validate checks threshold ordering and ranges
func (s Settings) Validate() error {
	var errs []error
	if s.SproutThreshold < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1", constants.SettingSproutThreshold))
	}
	if s.BloomThreshold <= s.SproutThreshold {
		errs = append(errs, fmt.Errorf("%s must be greater than %s", constants.SettingBloomThreshold, constants.SettingSproutThreshold))
	}
	if s.WiltThreshold < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1", constants.SettingWiltThreshold))
	}
	if s.NeglectPenaltyUnit < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative", constants.SettingNeglectPenaltyUnit))
	}
	if s.WiltRecoveryPoints < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1", constants.SettingWiltRecoveryPoints))
	}
	if s.CareCooldownMin < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative", constants.SettingCareCooldownMin))
	}
	if s.MusicFreshnessHours < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative", constants.SettingMusicFreshnessHours))
	}
	if s.Timezone != "" && s.Timezone != "Local" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: %w", constants.SettingTimezone, s.Timezone, err))
		}
	}
	return errors.Join(errs...)
}

// MapToSettings converts stored key/value pairs into Settings. Missing keys keep their defaults.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	ints := map[string]*int{
		constants.SettingSproutThreshold:     &settings.SproutThreshold,
		constants.SettingBloomThreshold:      &settings.BloomThreshold,
		constants.SettingWiltThreshold:       &settings.WiltThreshold,
		constants.SettingNeglectPenaltyUnit:  &settings.NeglectPenaltyUnit,
		constants.SettingWiltRecoveryPoints:  &settings.WiltRecoveryPoints,
		constants.SettingCareCooldownMin:     &settings.CareCooldownMin,
		constants.SettingMusicFreshnessHours: &settings.MusicFreshnessHours,
	}

	for key, value := range data {
		if key == constants.SettingTimezone {
			settings.Timezone = value
			continue
		}
		dst, ok := ints[key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = n
	}

	return settings, nil
}

// SettingsToMap converts Settings into key/value pairs for storage
func SettingsToMap(s Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:            s.Timezone,
		constants.SettingSproutThreshold:     strconv.Itoa(s.SproutThreshold),
		constants.SettingBloomThreshold:      strconv.Itoa(s.BloomThreshold),
		constants.SettingWiltThreshold:       strconv.Itoa(s.WiltThreshold),
		constants.SettingNeglectPenaltyUnit:  strconv.Itoa(s.NeglectPenaltyUnit),
		constants.SettingWiltRecoveryPoints:  strconv.Itoa(s.WiltRecoveryPoints),
		constants.SettingCareCooldownMin:     strconv.Itoa(s.CareCooldownMin),
		constants.SettingMusicFreshnessHours: strconv.Itoa(s.MusicFreshnessHours),
	}
}

// SetValue applies a single key=value change, as used by the settings command
func (s *Settings) SetValue(key, value string) error {
	m := SettingsToMap(*s)
	if _, ok := m[key]; !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	m[key] = value
	updated, err := MapToSettings(m)
	if err != nil {
		return err
	}
	*s = updated
	return nil
}
