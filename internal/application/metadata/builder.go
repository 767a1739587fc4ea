// Package metadata builds upload metadata from the topic, the script and the
// brand config. Building is pure and cannot fail.
package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aescanero/shortcast/pkg/domain"
)

// BaseHashtags are prepended to the brand hashtags on every upload
var BaseHashtags = []string{"#AI", "#FutureTech", "#Innovation", "#TechNews", "#Shorts"}

// ExtraKeywords are appended to the brand keywords on every upload
var ExtraKeywords = []string{"AI facts", "robotics", "quantum computing", "future technology"}

// PublishDelay is how far after the build time the upload is scheduled
const PublishDelay = time.Hour

var stageDirections = regexp.MustCompile(`\[[^\]]+\]`)

// Builder builds upload metadata
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a builder. A nil clock uses time.Now.
func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now}
}

// Build returns the upload metadata for one run
func (b *Builder) Build(rc *domain.RunContext, topic *domain.TopicIdea, script *domain.ScriptDraft) *domain.UploadMetadata {
	now := b.now()
	cfg := rc.Config
	hashtags := dedupe(BaseHashtags, cfg.Hashtags)

	lines := []string{
		fmt.Sprintf("%s - %s", cfg.ChannelName, cfg.Tagline),
		"",
		"Hook: " + StripStageDirections(script.Hook),
		"Sources:",
	}
	for _, s := range topic.Sources {
		lines = append(lines, fmt.Sprintf("• %s: %s", s.Title, s.URL))
	}
	lines = append(lines, "", "#shorts "+strings.Join(hashtags, " "))

	return &domain.UploadMetadata{
		Title:       fmt.Sprintf("%s 🚀 (%s)", topic.Title, now.Format("1/2/2006")),
		Description: strings.Join(lines, "\n"),
		Hashtags:    hashtags,
		Keywords:    dedupe(cfg.Keywords, ExtraKeywords),
		ScheduledAt: now.Add(PublishDelay).UTC(),
	}
}

// StripStageDirections removes [bracketed] directions from narration text
func StripStageDirections(s string) string {
	return strings.TrimSpace(stageDirections.ReplaceAllString(s, ""))
}

// dedupe concatenates the lists keeping the first occurrence of every value
func dedupe(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
