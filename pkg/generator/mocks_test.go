package generator

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockImageModel struct {
	calls              int
	lastModel          string
	lastPrompt         string
	lastConfig         *genai.GenerateImagesConfig
	generateImagesFunc func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

func (m *mockImageModel) GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastPrompt = prompt
	m.lastConfig = config
	if m.generateImagesFunc != nil {
		return m.generateImagesFunc(ctx, model, prompt, config)
	}
	return &genai.GenerateImagesResponse{}, nil
}

// pngBytes はテスト用の w x h の PNG を返します。
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func generatedImage(data []byte) *genai.GeneratedImage {
	return &genai.GeneratedImage{Image: &genai.Image{ImageBytes: data, MIMEType: "image/png"}}
}
