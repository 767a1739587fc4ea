package orchestrator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/go-playground/validator/v10"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var (
	validTones = map[domain.Tone]bool{
		domain.ToneEducational: true,
		domain.ToneHype:        true,
		domain.ToneMysterious:  true,
		domain.TonePlayful:     true,
		domain.ToneAnalytical:  true,
	}
	validStyles = map[domain.VideoStyle]bool{
		domain.VideoStyleGlitch:        true,
		domain.VideoStyleHolographic:   true,
		domain.VideoStyleCyberpunk:     true,
		domain.VideoStyleMinimalFuture: true,
		domain.VideoStyleNeon:          true,
	}
	validVoices = map[domain.VoiceProfile]bool{
		domain.VoiceProfileAlloy: true,
		domain.VoiceProfileNova:  true,
		domain.VoiceProfileOrion: true,
	}
)

// brandRules mirrors BrandConfig with the constraints a saved config must meet
type brandRules struct {
	BrandColor   string   `json:"brand_color" validate:"rrggbb"`
	AccentColor  string   `json:"accent_color" validate:"rrggbb"`
	Tone         string   `json:"tone" validate:"tone"`
	VideoStyle   string   `json:"video_style" validate:"video_style"`
	VoiceProfile string   `json:"voice_profile" validate:"voice_profile"`
	ChannelName  string   `json:"channel_name" validate:"notblank"`
	Hashtags     []string `json:"hashtags" validate:"dive,startswith=#,min=2,nowhitespace"`
	Keywords     []string `json:"keywords" validate:"dive,notblank"`
}

// Validator validates brand configs
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new brand config validator
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	mustRegister(v, "rrggbb", func(fl validator.FieldLevel) bool {
		return hexColor.MatchString(fl.Field().String())
	})
	mustRegister(v, "tone", func(fl validator.FieldLevel) bool {
		return validTones[domain.Tone(fl.Field().String())]
	})
	mustRegister(v, "video_style", func(fl validator.FieldLevel) bool {
		return validStyles[domain.VideoStyle(fl.Field().String())]
	})
	mustRegister(v, "voice_profile", func(fl validator.FieldLevel) bool {
		return validVoices[domain.VoiceProfile(fl.Field().String())]
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "nowhitespace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), " \t\n")
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

// Validate validates a merged brand config and reports the first violation
func (v *Validator) Validate(cfg *domain.BrandConfig) error {
	if cfg == nil {
		return fmt.Errorf("brand config is nil")
	}

	rules := brandRules{
		BrandColor:   cfg.BrandColor,
		AccentColor:  cfg.AccentColor,
		Tone:         string(cfg.Tone),
		VideoStyle:   string(cfg.VideoStyle),
		VoiceProfile: string(cfg.VoiceProfile),
		ChannelName:  cfg.ChannelName,
		Hashtags:     cfg.Hashtags,
		Keywords:     cfg.Keywords,
	}

	err := v.validate.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate brand config: %w", err)
	}
	return describe(fieldErrs[0])
}

// describe turns a field error into a message naming the JSON field
func describe(fe validator.FieldError) error {
	field := fe.Field()

	switch fe.Tag() {
	case "rrggbb":
		return fmt.Errorf("%s must be #RRGGBB, got %q", field, fe.Value())
	case "tone", "video_style", "voice_profile":
		return fmt.Errorf("unsupported %s: %v", fe.Tag(), fe.Value())
	case "notblank":
		return fmt.Errorf("%s is required", field)
	case "startswith":
		return fmt.Errorf("invalid hashtag %q: must start with #", fe.Value())
	case "min":
		return fmt.Errorf("invalid hashtag %q: is empty", fe.Value())
	case "nowhitespace":
		return fmt.Errorf("invalid hashtag %q: must not contain whitespace", fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", field, fe.Tag())
	}
}
