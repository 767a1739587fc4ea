package domain

import "time"

// TopicProvenance tells where a topic came from
type TopicProvenance string

const (
	TopicProvenanceTrending TopicProvenance = "trending"
	TopicProvenanceFallback TopicProvenance = "fallback"
)

// VisualSource tells how a visual sequence was produced
type VisualSource string

const (
	VisualSourceStock     VisualSource = "stock"
	VisualSourceGenerated VisualSource = "generated"
)

// AspectRatioVertical is the only supported aspect ratio
const AspectRatioVertical = "9:16"

// Source is a reference backing a topic
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TopicIdea is the output of the research stage
type TopicIdea struct {
	Title      string          `json:"title"`
	Summary    string          `json:"summary"`
	Angle      string          `json:"angle"`
	Sources    []Source        `json:"sources"`
	Provenance TopicProvenance `json:"provenance,omitempty"`
}

// ScriptDraft is the output of the script stage
type ScriptDraft struct {
	Hook                     string `json:"hook"`
	Body                     string `json:"body"`
	Outro                    string `json:"outro"`
	FullScript               string `json:"full_script"`
	EstimatedDurationSeconds int    `json:"estimated_duration_seconds"`
}

// VoiceoverAsset is the narration audio file
type VoiceoverAsset struct {
	Path            string `json:"path"`
	Format          string `json:"format"`
	DurationSeconds int    `json:"duration_seconds"`
}

// VisualAsset is the silent vertical background sequence
type VisualAsset struct {
	Path            string       `json:"path"`
	AspectRatio     string       `json:"aspect_ratio"`
	DurationSeconds int          `json:"duration_seconds"`
	Source          VisualSource `json:"source"`
}

// ThumbnailAsset is the rendered thumbnail image
type ThumbnailAsset struct {
	Path string `json:"path"`
}

// UploadMetadata is what gets sent to the publishing platform.
// VideoID and WatchURL are only set after a successful publish.
type UploadMetadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hashtags    []string  `json:"hashtags"`
	Keywords    []string  `json:"keywords"`
	ScheduledAt time.Time `json:"scheduled_at"`
	VideoID     string    `json:"video_id,omitempty"`
	WatchURL    string    `json:"watch_url,omitempty"`
}

// PublishResult is returned by a publisher on success
type PublishResult struct {
	VideoID  string `json:"video_id"`
	WatchURL string `json:"watch_url"`
}
