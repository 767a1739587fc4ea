// Package youtube publishes videos through the YouTube Data API v3 using a
// long-lived OAuth refresh token.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aescanero/shortcast/pkg/domain"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	// CategoryScienceTechnology is the YouTube category id used for every upload
	CategoryScienceTechnology = "28"
	// DefaultPrivacy is the privacy status of an upload until its scheduled publish time
	DefaultPrivacy = "unlisted"

	watchURLPrefix = "https://youtube.com/shorts/"
)

// ErrMissingCredentials is returned when any OAuth credential is empty
var ErrMissingCredentials = errors.New("YouTube OAuth credentials missing")

// Config holds the OAuth client and refresh token
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// videoAPI is the subset of the Data API the publisher calls
type videoAPI interface {
	InsertVideo(ctx context.Context, video *yt.Video, media io.Reader) (string, error)
	SetThumbnail(ctx context.Context, videoID string, media io.Reader) error
}

// Publisher uploads videos and thumbnails
type Publisher struct {
	cfg    Config
	newAPI func(ctx context.Context) (videoAPI, error)
}

// NewPublisher creates a publisher
func NewPublisher(cfg Config) *Publisher {
	p := &Publisher{cfg: cfg}
	p.newAPI = p.dial
	return p
}

// Publish uploads the video, sets its thumbnail and returns the watch URL
func (p *Publisher) Publish(ctx context.Context, rc *domain.RunContext, videoPath string, thumbnail *domain.ThumbnailAsset, metadata *domain.UploadMetadata) (*domain.PublishResult, error) {
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" || p.cfg.RefreshToken == "" {
		return nil, ErrMissingCredentials
	}

	api, err := p.newAPI(ctx)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}

	video, err := os.Open(videoPath)
	if err != nil {
		return nil, fmt.Errorf("open video file: %w", err)
	}
	defer video.Close()

	videoID, err := api.InsertVideo(ctx, BuildVideo(metadata), video)
	if err != nil {
		return nil, fmt.Errorf("youtube upload: %w", err)
	}
	if videoID == "" {
		return nil, errors.New("youtube upload returned no video id")
	}
	rc.Logger.Info("video uploaded", zap.String("video_id", videoID))

	if thumbnail != nil {
		thumb, err := os.Open(thumbnail.Path)
		if err != nil {
			return nil, fmt.Errorf("open thumbnail: %w", err)
		}
		defer thumb.Close()

		if err := api.SetThumbnail(ctx, videoID, thumb); err != nil {
			return nil, fmt.Errorf("thumbnail upload: %w", err)
		}
		rc.Logger.Info("thumbnail uploaded", zap.String("video_id", videoID))
	}

	return &domain.PublishResult{
		VideoID:  videoID,
		WatchURL: watchURLPrefix + videoID,
	}, nil
}

// BuildVideo maps upload metadata onto the Data API resource
func BuildVideo(metadata *domain.UploadMetadata) *yt.Video {
	status := &yt.VideoStatus{
		PrivacyStatus:           DefaultPrivacy,
		SelfDeclaredMadeForKids: false,
		ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
	}
	if !metadata.ScheduledAt.IsZero() {
		status.PublishAt = metadata.ScheduledAt.UTC().Format(time.RFC3339)
	}

	return &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       metadata.Title,
			Description: metadata.Description,
			Tags:        metadata.Keywords,
			CategoryId:  CategoryScienceTechnology,
		},
		Status: status,
	}
}

// dial exchanges the refresh token and builds the Data API service
func (p *Publisher) dial(ctx context.Context) (videoAPI, error) {
	conf := &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{yt.YoutubeUploadScope},
	}
	client := conf.Client(ctx, &oauth2.Token{RefreshToken: p.cfg.RefreshToken})

	svc, err := yt.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}
	return &service{svc: svc}, nil
}

type service struct {
	svc *yt.Service
}

func (s *service) InsertVideo(ctx context.Context, video *yt.Video, media io.Reader) (string, error) {
	uploaded, err := s.svc.Videos.Insert([]string{"snippet", "status"}, video).Media(media).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return uploaded.Id, nil
}

func (s *service) SetThumbnail(ctx context.Context, videoID string, media io.Reader) error {
	_, err := s.svc.Thumbnails.Set(videoID).Media(media).Context(ctx).Do()
	return err
}
