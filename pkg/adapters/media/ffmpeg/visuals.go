package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aescanero/shortcast/internal/application/fallback"
)

// FrameSize is the vertical output resolution
const FrameSize = "1080x1920"

// NormalizeStock scales and pads a downloaded clip to 1080x1920, trims it to
// seconds and drops its audio
func NormalizeStock(ctx context.Context, runner Runner, in, out string, seconds int) error {
	err := runner.Run(ctx,
		"-i", in,
		"-vf", "scale=1080:1920:force_original_aspect_ratio=decrease,pad=1080:1920:(ow-iw)/2:(oh-ih)/2:black",
		"-t", strconv.Itoa(seconds),
		"-an",
		"-preset", "veryfast",
		out,
	)
	if err != nil {
		return fmt.Errorf("stock normalisation failed: %w", err)
	}
	return nil
}

// GenerateProcedural renders an animated noise sequence from the palette
func GenerateProcedural(ctx context.Context, runner Runner, out string, seconds int, palette fallback.Palette) error {
	d := strconv.Itoa(seconds)
	input := fmt.Sprintf("color=c=%s:size=%s:rate=60:d=%s", palette.Background, FrameSize, d)
	filters := strings.Join([]string{
		"format=yuv420p",
		"noise=alls=14:allf=t+u",
		"eq=contrast=1.15:brightness=0.03:saturation=1.6",
		fmt.Sprintf("drawbox=x=(iw/2-4):y=0:w=8:h=ih:color=%s:t=fill", palette.Stripe),
		fmt.Sprintf("drawbox=x=0:y=ih*0.7:w=iw:h=4:color=%s@0.5:t=fill", palette.Accent),
		"vignette=PI/4",
		fmt.Sprintf("hue=h=90*sin(2*PI*t/%s)", d),
	}, ",")

	err := runner.Run(ctx,
		"-f", "lavfi",
		"-i", input,
		"-vf", filters,
		"-t", d,
		"-preset", "ultrafast",
		"-r", "60",
		"-pix_fmt", "yuv420p",
		out,
	)
	if err != nil {
		return fmt.Errorf("procedural visual failed: %w", err)
	}
	return nil
}
