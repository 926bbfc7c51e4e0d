package constants

// Settings keys as stored in the settings table
const (
	SettingTimezone            = "timezone"
	SettingSproutThreshold     = "sprout_threshold"
	SettingBloomThreshold      = "bloom_threshold"
	SettingWiltThreshold       = "wilt_threshold"
	SettingNeglectPenaltyUnit  = "neglect_penalty_unit"
	SettingWiltRecoveryPoints  = "wilt_recovery_points"
	SettingCareCooldownMin     = "care_cooldown_min"
	SettingMusicFreshnessHours = "music_freshness_hours"
)

// Default settings values
const (
	DefaultTimezone            = "Local"
	DefaultSproutThreshold     = 5
	DefaultBloomThreshold      = 10
	DefaultWiltThreshold       = 3
	DefaultNeglectPenaltyUnit  = 2
	DefaultWiltRecoveryPoints  = 3
	DefaultCareCooldownMin     = 60
	DefaultMusicFreshnessHours = 72
)
