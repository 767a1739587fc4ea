package domain

import "time"

// Tone is the narration tone of the channel
type Tone string

const (
	ToneEducational Tone = "educational"
	ToneHype        Tone = "hype"
	ToneMysterious  Tone = "mysterious"
	TonePlayful     Tone = "playful"
	ToneAnalytical  Tone = "analytical"
)

// VideoStyle is the visual aesthetic applied to renders and stock searches
type VideoStyle string

const (
	VideoStyleGlitch        VideoStyle = "glitch"
	VideoStyleHolographic   VideoStyle = "holographic"
	VideoStyleCyberpunk     VideoStyle = "cyberpunk"
	VideoStyleMinimalFuture VideoStyle = "minimal-future"
	VideoStyleNeon          VideoStyle = "neon"
)

// VoiceProfile selects the narration voice
type VoiceProfile string

const (
	VoiceProfileAlloy VoiceProfile = "openai_alloy"
	VoiceProfileNova  VoiceProfile = "openai_nova"
	VoiceProfileOrion VoiceProfile = "openai_orion"
)

// BrandConfig is the tenant-level configuration. There is one per deployment.
type BrandConfig struct {
	BrandColor   string       `json:"brand_color" yaml:"brand_color"`
	AccentColor  string       `json:"accent_color" yaml:"accent_color"`
	Tone         Tone         `json:"tone" yaml:"tone"`
	VideoStyle   VideoStyle   `json:"video_style" yaml:"video_style"`
	VoiceProfile VoiceProfile `json:"voice_profile" yaml:"voice_profile"`
	ChannelName  string       `json:"channel_name" yaml:"channel_name"`
	Tagline      string       `json:"tagline" yaml:"tagline"`
	Hashtags     []string     `json:"hashtags" yaml:"hashtags"`
	Keywords     []string     `json:"keywords" yaml:"keywords"`
	LastPrompted *time.Time   `json:"last_prompted,omitempty" yaml:"last_prompted,omitempty"`
}

// BrandConfigPatch is a partial BrandConfig. Nil fields are left untouched on upsert.
type BrandConfigPatch struct {
	BrandColor   *string       `json:"brand_color,omitempty" yaml:"brand_color,omitempty"`
	AccentColor  *string       `json:"accent_color,omitempty" yaml:"accent_color,omitempty"`
	Tone         *Tone         `json:"tone,omitempty" yaml:"tone,omitempty"`
	VideoStyle   *VideoStyle   `json:"video_style,omitempty" yaml:"video_style,omitempty"`
	VoiceProfile *VoiceProfile `json:"voice_profile,omitempty" yaml:"voice_profile,omitempty"`
	ChannelName  *string       `json:"channel_name,omitempty" yaml:"channel_name,omitempty"`
	Tagline      *string       `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Hashtags     []string      `json:"hashtags,omitempty" yaml:"hashtags,omitempty"`
	Keywords     []string      `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	LastPrompted *time.Time    `json:"last_prompted,omitempty" yaml:"last_prompted,omitempty"`
}

// DefaultBrandConfig returns the values a first save is merged into
func DefaultBrandConfig() BrandConfig {
	return BrandConfig{
		BrandColor:   "#12F7FF",
		AccentColor:  "#FF2E63",
		Tone:         ToneHype,
		VideoStyle:   VideoStyleCyberpunk,
		VoiceProfile: VoiceProfileAlloy,
		ChannelName:  "FutureFlash AI",
		Tagline:      "Daily neural jolts about tomorrow.",
		Hashtags:     []string{"#AIShorts", "#FutureTech", "#Robotics", "#QuantumLeap"},
		Keywords:     []string{"AI", "technology", "future", "robotics", "innovation"},
	}
}

// Apply returns base with every non-nil field of the patch written over it
func (p BrandConfigPatch) Apply(base BrandConfig) BrandConfig {
	out := base.Clone()
	if p.BrandColor != nil {
		out.BrandColor = *p.BrandColor
	}
	if p.AccentColor != nil {
		out.AccentColor = *p.AccentColor
	}
	if p.Tone != nil {
		out.Tone = *p.Tone
	}
	if p.VideoStyle != nil {
		out.VideoStyle = *p.VideoStyle
	}
	if p.VoiceProfile != nil {
		out.VoiceProfile = *p.VoiceProfile
	}
	if p.ChannelName != nil {
		out.ChannelName = *p.ChannelName
	}
	if p.Tagline != nil {
		out.Tagline = *p.Tagline
	}
	if p.Hashtags != nil {
		out.Hashtags = append([]string(nil), p.Hashtags...)
	}
	if p.Keywords != nil {
		out.Keywords = append([]string(nil), p.Keywords...)
	}
	if p.LastPrompted != nil {
		t := *p.LastPrompted
		out.LastPrompted = &t
	}
	return out
}

// MergeBrandConfig merges defaults, the stored config (may be nil) and the patch, in that order
func MergeBrandConfig(existing *BrandConfig, patch BrandConfigPatch) BrandConfig {
	base := DefaultBrandConfig()
	if existing != nil {
		base = existing.Clone()
	}
	return patch.Apply(base)
}

// Clone returns a copy that shares no slices with c
func (c BrandConfig) Clone() BrandConfig {
	out := c
	out.Hashtags = append([]string(nil), c.Hashtags...)
	out.Keywords = append([]string(nil), c.Keywords...)
	if c.LastPrompted != nil {
		t := *c.LastPrompted
		out.LastPrompted = &t
	}
	return out
}

// RequireBrandConfig fails with ErrConfigMissing when no config has been saved
func RequireBrandConfig(cfg *BrandConfig) error {
	if cfg == nil {
		return ErrConfigMissing
	}
	return nil
}
