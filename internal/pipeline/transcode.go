package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/skytechmk/webappV.2-sub002/internal/config"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
)

const (
	defaultThumbnailMaxEdge = 400
	defaultJPEGQuality      = 80
	previewVideoHeight      = 720
)

// Transcoder derives a preview artifact (thumbnail or downscaled clip) from a
// staged original. Implementations must leave the preview inside the job's
// scratch directory and remove any partial output on failure.
type Transcoder interface {
	DerivePreview(ctx context.Context, job *models.IngestionJob) (string, error)
}

type previewTranscoder struct {
	cfg    *config.Config
	logger logger.Logger
}

func NewTranscoder(cfg *config.Config, log logger.Logger) Transcoder {
	return &previewTranscoder{cfg: cfg, logger: log}
}

func (t *previewTranscoder) DerivePreview(ctx context.Context, job *models.IngestionJob) (string, error) {
	switch job.Kind {
	case models.MediaKindImage:
		return t.deriveThumbnail(job)
	case models.MediaKindVideo:
		return t.deriveClip(ctx, job)
	default:
		return "", fmt.Errorf("unsupported media kind: %s", job.Kind)
	}
}

// deriveThumbnail re-encodes the original as a bounded JPEG. Images already
// inside the bound are re-encoded at original size, never upscaled.
func (t *previewTranscoder) deriveThumbnail(job *models.IngestionJob) (string, error) {
	maxEdge := t.cfg.Pipeline.ThumbnailMaxEdge
	if maxEdge <= 0 {
		maxEdge = defaultThumbnailMaxEdge
	}
	quality := t.cfg.Pipeline.JPEGQuality
	if quality <= 0 {
		quality = defaultJPEGQuality
	}

	src, err := imaging.Open(job.SourcePath, imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(err, "transcode failed: open image")
	}

	thumb := src
	bounds := src.Bounds()
	if bounds.Dx() > maxEdge || bounds.Dy() > maxEdge {
		thumb = imaging.Fit(src, maxEdge, maxEdge, imaging.Lanczos)
	}

	previewPath := filepath.Join(filepath.Dir(job.SourcePath), "preview.jpg")
	if err := imaging.Save(thumb, previewPath, imaging.JPEGQuality(quality)); err != nil {
		removeQuiet(previewPath)
		return "", errors.Wrap(err, "transcode failed: save thumbnail")
	}
	return previewPath, nil
}

// deriveClip rescales the original to 720p through an external ffmpeg child
// process. The process runs under a hard deadline and is killed on expiry; a
// non-zero exit is a hard failure for the job.
func (t *previewTranscoder) deriveClip(ctx context.Context, job *models.IngestionJob) (string, error) {
	previewPath := filepath.Join(filepath.Dir(job.SourcePath), "preview.mp4")

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Pipeline.VideoTimeout())
	defer cancel()

	bin := t.cfg.Pipeline.FFmpegBin
	if bin == "" {
		bin = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-i", job.SourcePath,
		"-vf", fmt.Sprintf("scale=-2:%d", previewVideoHeight),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "28",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y", previewPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		removeQuiet(previewPath)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.Wrapf(ErrTranscodeTimeout, "after %s", t.cfg.Pipeline.VideoTimeout())
		}
		return "", errors.Wrapf(err, "transcode failed: %s", stderrTail(stderr.String()))
	}
	return previewPath, nil
}

func stderrTail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, " | ")
}

func removeQuiet(path string) {
	_ = os.Remove(path)
}
