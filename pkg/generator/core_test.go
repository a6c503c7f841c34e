package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewImagenGenerator(t *testing.T) {
	t.Run("nilチェック: 依存関係が足りない場合はエラーを返す", func(t *testing.T) {
		_, err := NewImagenGenerator(nil, "model")
		assert.Error(t, err)
	})

	t.Run("モデル名が空なら既定のモデルを使う", func(t *testing.T) {
		gen, err := NewImagenGenerator(&mockImageModel{}, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, gen.Model())
	})
}

func TestImagenGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: 固定の設定で1回だけリクエストし、順番どおりに返す", func(t *testing.T) {
		payloads := [][]byte{pngBytes(t, 1, 1), pngBytes(t, 2, 2), pngBytes(t, 3, 3)}
		ai := &mockImageModel{
			generateImagesFunc: func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
				resp := &genai.GenerateImagesResponse{}
				for _, p := range payloads {
					resp.GeneratedImages = append(resp.GeneratedImages, generatedImage(p))
				}
				return resp, nil
			},
		}

		gen, err := NewImagenGenerator(ai, "imagen-test")
		require.NoError(t, err)

		images, err := gen.Generate(ctx, domain.DefaultRequirements(), domain.UnitsMetric)
		require.NoError(t, err)

		assert.Equal(t, 1, ai.calls)
		assert.Equal(t, "imagen-test", ai.lastModel)
		assert.Contains(t, ai.lastPrompt, "Plot size: 250 sq.m")
		require.NotNil(t, ai.lastConfig)
		assert.EqualValues(t, 4, ai.lastConfig.NumberOfImages)
		assert.Equal(t, "image/png", ai.lastConfig.OutputMIMEType)
		assert.Equal(t, "1:1", ai.lastConfig.AspectRatio)

		require.Len(t, images, len(payloads))
		for i, img := range images {
			assert.Equal(t, payloads[i], img.Data)
			assert.Equal(t, i+1, img.Width)
			assert.Equal(t, i+1, img.Height)
		}
	})

	t.Run("失敗: 画像0枚はエラーになり空の成功にはならない", func(t *testing.T) {
		ai := &mockImageModel{}
		gen, _ := NewImagenGenerator(ai, "")

		images, err := gen.Generate(ctx, domain.DefaultRequirements(), domain.UnitsMetric)
		assert.Nil(t, images)

		var ge *GenerationError
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, KindEmpty, ge.Kind)
		assert.Equal(t, UserMessage, ge.UserMessage())
	})

	t.Run("失敗: 通信エラーはラップされ、リトライしない", func(t *testing.T) {
		cause := errors.New("connection reset")
		ai := &mockImageModel{
			generateImagesFunc: func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
				return nil, cause
			},
		}
		gen, _ := NewImagenGenerator(ai, "")

		_, err := gen.Generate(ctx, domain.DefaultRequirements(), domain.UnitsImperial)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, KindUnknown, KindOf(err))
		assert.Equal(t, 1, ai.calls)
		assert.Contains(t, ai.lastPrompt, "sq.ft")
	})

	t.Run("失敗: 認証エラーは auth に分類される", func(t *testing.T) {
		ai := &mockImageModel{
			generateImagesFunc: func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
				return nil, genai.APIError{Code: 403, Message: "API key not valid", Status: "PERMISSION_DENIED"}
			},
		}
		gen, _ := NewImagenGenerator(ai, "")

		_, err := gen.Generate(ctx, domain.DefaultRequirements(), domain.UnitsMetric)
		assert.Equal(t, KindAuth, KindOf(err))
	})
}
