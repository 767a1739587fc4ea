package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aescanero/shortcast/pkg/domain"
	"go.uber.org/zap"
)

// Output file names inside the run directory
const (
	VideoFile     = "short.mp4"
	ThumbnailFile = "thumbnail.jpg"
)

// Renderer assembles the final video and its thumbnail
type Renderer struct {
	runner   Runner
	fontFile string
}

// NewRenderer creates a renderer. fontFile is optional; without it the
// thumbnail text uses a named system font.
func NewRenderer(runner Runner, fontFile string) *Renderer {
	return &Renderer{runner: runner, fontFile: fontFile}
}

// Render burns captions and brand styling over the visual, muxes the
// narration and writes <workdir>/short.mp4
func (r *Renderer) Render(ctx context.Context, rc *domain.RunContext, visual *domain.VisualAsset, voice *domain.VoiceoverAsset, script *domain.ScriptDraft) (string, error) {
	if err := os.MkdirAll(rc.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	captions, err := WriteCaptions(rc.WorkDir, script)
	if err != nil {
		return "", err
	}

	out := filepath.Join(rc.WorkDir, VideoFile)
	err = r.runner.Run(ctx,
		"-i", visual.Path,
		"-i", voice.Path,
		"-filter_complex", renderFilter(rc.Config, captions),
		"-map", "[vout]",
		"-map", "1:a:0",
		"-shortest",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "+faststart",
		out,
	)
	if err != nil {
		return "", fmt.Errorf("video assembly failed: %w", err)
	}

	rc.Logger.Info("video assembled", zap.String("path", out))
	return out, nil
}

// Thumbnail grabs the first frame of the video, tints it with the brand
// color and draws the hook and tagline. Writes <workdir>/thumbnail.jpg.
func (r *Renderer) Thumbnail(ctx context.Context, rc *domain.RunContext, videoPath string, script *domain.ScriptDraft) (*domain.ThumbnailAsset, error) {
	out := filepath.Join(rc.WorkDir, ThumbnailFile)
	hook := strings.ToUpper(strings.TrimSpace(stageDirection.ReplaceAllString(script.Hook, "")))

	filter := strings.Join([]string{
		"scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920",
		fmt.Sprintf("drawbox=x=0:y=0:w=1080:h=1920:color=%s@0.15:t=fill", hexColor(rc.Config.BrandColor)),
		r.drawText(hook, "Montserrat-Bold",
			"x=(w-text_w)/2:y=H*0.2:fontsize=96:fontcolor=white:shadowcolor=0x000000AA:shadowx=10:shadowy=10"),
		r.drawText(rc.Config.Tagline, "Montserrat-SemiBold",
			fmt.Sprintf("x=(w-text_w)/2:y=H*0.8:fontsize=48:fontcolor=%sFF", hexColor(rc.Config.AccentColor))),
	}, ",")

	if err := r.runner.Run(ctx, "-i", videoPath, "-vframes", "1", "-vf", filter, out); err != nil {
		return nil, fmt.Errorf("thumbnail generation failed: %w", err)
	}

	rc.Logger.Info("thumbnail generated", zap.String("path", out))
	return &domain.ThumbnailAsset{Path: out}, nil
}

func (r *Renderer) drawText(text, font, layout string) string {
	face := "font=" + font
	if r.fontFile != "" {
		face = fmt.Sprintf("fontfile='%s'", escape(r.fontFile))
	}
	return fmt.Sprintf("drawtext=%s:text='%s':%s", face, escape(text), layout)
}

func renderFilter(cfg domain.BrandConfig, captions string) string {
	accent := hexColor(cfg.AccentColor)
	brand := hexColor(cfg.BrandColor)
	saturation := "1.35"
	if cfg.VideoStyle == domain.VideoStyleMinimalFuture {
		saturation = "1"
	}

	return strings.Join([]string{
		"[0:v]fps=60,format=yuv420p,scale=1080:1920:force_original_aspect_ratio=decrease," +
			"pad=1080:1920:(ow-iw)/2:(oh-ih)/2:black,eq=contrast=1.1:saturation=1.35:brightness=0.03,split[vbase][vbuf];",
		"[vbuf]tblend=all_mode='screen',format=rgba,curves=r='0/0 0.35/0.6 0.6/0.9 1/1'," +
			"hue=s=" + saturation + ":H=10*sin(0.7*PI*t)[vglitch];",
		"[vbase][vglitch]blend=all_mode='lighten':all_opacity=0.18," +
			fmt.Sprintf("drawbox=x=0:y=(mod(t*40\\,30))*10:w=1080:h=3:color=%s@0.6,", accent) +
			fmt.Sprintf("drawbox=x=40:y=40:w=6:h=160:color=%s@0.75,", brand) +
			fmt.Sprintf("drawbox=x=1034:y=1400:w=20:h=200:color=%s@0.6[vstyled];", accent),
		fmt.Sprintf("[vstyled]subtitles='%s':force_style='FontName=Montserrat,FontSize=52,"+
			"PrimaryColour=&H00FFFFFF&,OutlineColour=&H00252525&,Outline=3,Shadow=0,MarginV=90,Alignment=10'[vout]",
			escape(captions)),
	}, "")
}

// hexColor converts #RRGGBB into ffmpeg 0xRRGGBB notation
func hexColor(c string) string {
	return "0x" + strings.TrimPrefix(c, "#")
}

// escape quotes a value for use inside a single-quoted filter argument
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `'\''`, `:`, `\:`)
	return r.Replace(s)
}
