// Package domain holds the data model shared by the orchestrator, the stage
// providers, the stores and the API surfaces.
//
// A run produces exactly one RunRecord. Stage artifacts (TopicIdea,
// ScriptDraft, VoiceoverAsset, VisualAsset, ThumbnailAsset, UploadMetadata)
// are immutable values written into the record when the run is finalized.
package domain
