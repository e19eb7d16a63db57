package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRecognizedRoots(t *testing.T) {
	tests := []struct {
		path     string
		bucket   string
		segments []string
	}{
		{"checkpoints/sd15/model_a.ckpt", "checkpoints", []string{"sd15", "model_a.ckpt"}},
		{"checkpoints/model_b.ckpt", "checkpoints", []string{"model_b.ckpt"}},
		{"models/loras/style/anime.safetensors", "loras", []string{"style", "anime.safetensors"}},
		{"VAE/fix.pt", "vae", []string{"fix.pt"}},
		{"some/deep/controlnet/canny.pth", "controlnet", []string{"canny.pth"}},
		{"upscale_models/4x.pth", "upscale_models", []string{"4x.pth"}},
		{"clip_vision/vit.bin", "clip_vision", []string{"vit.bin"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := Classify(tt.path)
			assert.Equal(t, tt.bucket, c.Bucket)
			assert.Equal(t, tt.segments, c.Segments)
		})
	}
}

func TestClassifyBackslashes(t *testing.T) {
	c := Classify(`checkpoints\sd15\model_a.ckpt`)
	assert.Equal(t, "checkpoints", c.Bucket)
	assert.Equal(t, []string{"sd15", "model_a.ckpt"}, c.Segments)
}

func TestClassifyUnmatched(t *testing.T) {
	c := Classify("random/stuff/file.bin")
	assert.Equal(t, BucketOther, c.Bucket)
	assert.Equal(t, []string{"random", "stuff", "file.bin"}, c.Segments)
}

func TestClassifyBoundedMatch(t *testing.T) {
	// "my_checkpoints" must not match the "checkpoints" root.
	c := Classify("my_checkpoints/model.ckpt")
	assert.Equal(t, BucketOther, c.Bucket)

	// A substring inside a segment must not match either.
	c = Classify("vaerie/thing.bin")
	assert.Equal(t, BucketOther, c.Bucket)
}

func TestClassifyIdempotence(t *testing.T) {
	paths := []string{
		"checkpoints/sd15/model_a.ckpt",
		`checkpoints\sd15\model_a.ckpt`,
		"random/other/file.bin",
		"loras//double//slash.safetensors",
	}
	for _, p := range paths {
		first := Classify(p)
		renormalized := strings.ReplaceAll(p, "\\", "/")
		second := Classify(renormalized)
		assert.Equal(t, first, second, "classification must be stable under its own normalization: %s", p)
	}
}

func TestClassifyEmptySegmentsDiscarded(t *testing.T) {
	c := Classify("checkpoints///sd15//model.ckpt")
	assert.Equal(t, []string{"sd15", "model.ckpt"}, c.Segments)
}
