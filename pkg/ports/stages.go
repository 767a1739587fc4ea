package ports

import (
	"context"

	"github.com/aescanero/shortcast/pkg/domain"
)

// TopicResearcher picks today's topic. Implementations fall back to an internal pool
// instead of failing.
type TopicResearcher interface {
	Research(ctx context.Context, rc *domain.RunContext) (*domain.TopicIdea, error)
}

// ScriptWriter turns a topic into a narration script
type ScriptWriter interface {
	Write(ctx context.Context, rc *domain.RunContext, topic *domain.TopicIdea) (*domain.ScriptDraft, error)
}

// VoiceSynthesizer produces the narration audio
type VoiceSynthesizer interface {
	Synthesize(ctx context.Context, rc *domain.RunContext, script *domain.ScriptDraft) (*domain.VoiceoverAsset, error)
}

// VisualSourcer produces the background sequence. Implementations generate a
// procedural visual instead of failing when the external source is unavailable.
type VisualSourcer interface {
	Source(ctx context.Context, rc *domain.RunContext, script *domain.ScriptDraft) (*domain.VisualAsset, error)
}

// VideoRenderer assembles visual, narration and captions into the final video
type VideoRenderer interface {
	Render(ctx context.Context, rc *domain.RunContext, visual *domain.VisualAsset, voice *domain.VoiceoverAsset, script *domain.ScriptDraft) (string, error)
}

// ThumbnailRenderer renders the thumbnail from the final video
type ThumbnailRenderer interface {
	Thumbnail(ctx context.Context, rc *domain.RunContext, videoPath string, script *domain.ScriptDraft) (*domain.ThumbnailAsset, error)
}

// MetadataBuilder builds upload metadata. It cannot fail.
type MetadataBuilder interface {
	Build(rc *domain.RunContext, topic *domain.TopicIdea, script *domain.ScriptDraft) *domain.UploadMetadata
}

// Publisher uploads the video and its thumbnail
type Publisher interface {
	Publish(ctx context.Context, rc *domain.RunContext, videoPath string, thumbnail *domain.ThumbnailAsset, metadata *domain.UploadMetadata) (*domain.PublishResult, error)
}
