package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"github.com/skytechmk/webappV.2-sub002/internal/config"
	"github.com/skytechmk/webappV.2-sub002/internal/models"
	"github.com/skytechmk/webappV.2-sub002/pkg/logger"
)

func writeTestJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: 128,
				A: 255,
			})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
}

func writeFakeFFmpeg(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in not available on windows")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake ffmpeg: %v", err)
	}
	return path
}

func transcoderConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			VideoTimeoutSec:  5,
			ThumbnailMaxEdge: 400,
			JPEGQuality:      80,
		},
	}
}

func imageJob(t *testing.T, width, height int) *models.IngestionJob {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "original.jpg")
	writeTestJPEG(t, src, width, height)
	return &models.IngestionJob{
		JobID:       uuid.New(),
		EventID:     uuid.New(),
		Kind:        models.MediaKindImage,
		SourcePath:  src,
		ContentType: "image/jpeg",
		FileExt:     ".jpg",
	}
}

func TestTranscoder_ThumbnailFitsMaxEdge(t *testing.T) {
	tr := NewTranscoder(transcoderConfig(), logger.NewWithZap(zaptest.NewLogger(t)))
	job := imageJob(t, 1600, 900)

	previewPath, err := tr.DerivePreview(context.Background(), job)
	if err != nil {
		t.Fatalf("DerivePreview: %v", err)
	}

	img, err := imaging.Open(previewPath)
	if err != nil {
		t.Fatalf("failed to open preview: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > 400 || bounds.Dy() > 400 {
		t.Errorf("preview %dx%d exceeds 400px edge", bounds.Dx(), bounds.Dy())
	}
	// Aspect ratio survives: 1600x900 scales to 400x225.
	if bounds.Dx() != 400 || bounds.Dy() != 225 {
		t.Errorf("preview %dx%d, want 400x225", bounds.Dx(), bounds.Dy())
	}
}

func TestTranscoder_SmallImageIsNotUpscaled(t *testing.T) {
	tr := NewTranscoder(transcoderConfig(), logger.NewWithZap(zaptest.NewLogger(t)))
	job := imageJob(t, 200, 100)

	previewPath, err := tr.DerivePreview(context.Background(), job)
	if err != nil {
		t.Fatalf("DerivePreview: %v", err)
	}

	img, err := imaging.Open(previewPath)
	if err != nil {
		t.Fatalf("failed to open preview: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Errorf("small image was rescaled to %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestTranscoder_CorruptImageFails(t *testing.T) {
	tr := NewTranscoder(transcoderConfig(), logger.NewWithZap(zaptest.NewLogger(t)))
	dir := t.TempDir()
	src := filepath.Join(dir, "original.jpg")
	if err := os.WriteFile(src, []byte("not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	job := &models.IngestionJob{
		JobID:      uuid.New(),
		EventID:    uuid.New(),
		Kind:       models.MediaKindImage,
		SourcePath: src,
		FileExt:    ".jpg",
	}

	if _, err := tr.DerivePreview(context.Background(), job); err == nil {
		t.Fatal("expected error for corrupt image")
	}
}

func videoJob(t *testing.T) *models.IngestionJob {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "original.mp4")
	if err := os.WriteFile(src, []byte("fake-video"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &models.IngestionJob{
		JobID:       uuid.New(),
		EventID:     uuid.New(),
		Kind:        models.MediaKindVideo,
		SourcePath:  src,
		ContentType: "video/mp4",
		FileExt:     ".mp4",
	}
}

func TestTranscoder_VideoSuccess(t *testing.T) {
	cfg := transcoderConfig()
	// Stand-in writes its output file like the real encoder would.
	cfg.Pipeline.FFmpegBin = writeFakeFFmpeg(t, `
out=""
for arg in "$@"; do out="$arg"; done
echo clip > "$out"`)
	tr := NewTranscoder(cfg, logger.NewWithZap(zaptest.NewLogger(t)))

	job := videoJob(t)
	previewPath, err := tr.DerivePreview(context.Background(), job)
	if err != nil {
		t.Fatalf("DerivePreview: %v", err)
	}
	if filepath.Ext(previewPath) != ".mp4" {
		t.Errorf("preview path %q, want .mp4", previewPath)
	}
	if _, err := os.Stat(previewPath); err != nil {
		t.Errorf("preview file missing: %v", err)
	}
}

func TestTranscoder_VideoFailureIncludesStderr(t *testing.T) {
	cfg := transcoderConfig()
	cfg.Pipeline.FFmpegBin = writeFakeFFmpeg(t, `echo "moov atom not found" >&2; exit 3`)
	tr := NewTranscoder(cfg, logger.NewWithZap(zaptest.NewLogger(t)))

	job := videoJob(t)
	_, err := tr.DerivePreview(context.Background(), job)
	if err == nil {
		t.Fatal("expected error from failing encoder")
	}
	if !strings.Contains(err.Error(), "transcode failed") {
		t.Errorf("error %q does not state transcode failure", err.Error())
	}
	if !strings.Contains(err.Error(), "moov atom") {
		t.Errorf("error %q does not carry encoder stderr", err.Error())
	}
}

func TestTranscoder_VideoTimeoutIsKilled(t *testing.T) {
	cfg := transcoderConfig()
	cfg.Pipeline.VideoTimeoutSec = 1
	cfg.Pipeline.FFmpegBin = writeFakeFFmpeg(t, `sleep 30`)
	tr := NewTranscoder(cfg, logger.NewWithZap(zaptest.NewLogger(t)))

	job := videoJob(t)
	_, err := tr.DerivePreview(context.Background(), job)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTranscodeTimeout(err) {
		t.Errorf("expected transcode timeout, got %v", err)
	}
}
