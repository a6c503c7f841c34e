package generator

import (
	"context"

	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
	"google.golang.org/genai"
)

// ImageModel は画像生成 API への通信を抽象化するインターフェースです。
// *genai.Models (genai.Client.Models) がそのまま満たします。
type ImageModel interface {
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// FloorPlanGenerator はビジネスロジック層が利用する統合窓口です。
type FloorPlanGenerator interface {
	// Generate は要件から間取り図を生成し、サービスが返した順に画像を返します。
	// 失敗時は *GenerationError を返します。
	Generate(ctx context.Context, req domain.Requirements, units domain.Units) ([]domain.Image, error)
}

var _ ImageModel = (*genai.Models)(nil)
