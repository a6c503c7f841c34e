package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
	"github.com/shouni/gemini-floorplan-kit/pkg/prompt"
	"google.golang.org/genai"
)

// ImagenGenerator は Imagen を利用して間取り図を生成するジェネレーターです。
// 通信クライアントはコンストラクタで注入されるため、テストではフェイクに差し替えられます。
type ImagenGenerator struct {
	imageModel ImageModel
	model      string
}

// NewImagenGenerator は依存関係を注入して ImagenGenerator を初期化します。
// model が空の場合は DefaultModel を利用します。
func NewImagenGenerator(imageModel ImageModel, model string) (*ImagenGenerator, error) {
	if imageModel == nil {
		return nil, fmt.Errorf("imageModel (ImageModel) is required")
	}
	if model == "" {
		model = DefaultModel
	}
	return &ImagenGenerator{
		imageModel: imageModel,
		model:      model,
	}, nil
}

// Model は使用するモデル名を返します。
func (g *ImagenGenerator) Model() string { return g.model }

// Generate は要件からプロンプトを組み立て、1回だけ生成リクエストを送信します。
// リトライやバッチ処理は行いません。
func (g *ImagenGenerator) Generate(ctx context.Context, req domain.Requirements, units domain.Units) ([]domain.Image, error) {
	p := prompt.BuildFloorPlanPrompt(req, units)

	slog.InfoContext(ctx, "Imagen生成リクエストを送信します",
		"model", g.model, "plot_size", req.PlotSize, "units", string(units), "prompt_len", len(p))

	resp, err := g.imageModel.GenerateImages(ctx, g.model, p, generateConfig())
	if err != nil {
		return nil, classify(err)
	}

	images, err := parseToImages(resp)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Imagen生成が完了しました", "model", g.model, "images", len(images))
	return images, nil
}

func generateConfig() *genai.GenerateImagesConfig {
	return &genai.GenerateImagesConfig{
		NumberOfImages:   NumberOfImages,
		OutputMIMEType:   OutputMIMEType,
		AspectRatio:      AspectRatio,
		IncludeRAIReason: true,
	}
}

var _ FloorPlanGenerator = (*ImagenGenerator)(nil)
