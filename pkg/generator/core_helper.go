package generator

import (
	"log/slog"
	"strings"

	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
	"github.com/shouni/gemini-floorplan-kit/pkg/imgutil"
	"google.golang.org/genai"
)

// parseToImages は Imagen のレスポンスからエンコード済みペイロードだけを順番どおり取り出します。
// 1枚も取り出せない場合は成功扱いにせず GenerationError を返します。
// グリッドに表示するのは NumberOfImages 枚までなので、それを超えた分は捨てます。
func parseToImages(resp *genai.GenerateImagesResponse) ([]domain.Image, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, &GenerationError{Kind: KindEmpty, Err: errNoImages}
	}

	images := make([]domain.Image, 0, len(resp.GeneratedImages))
	var reasons []string
	for i, gen := range resp.GeneratedImages {
		if gen == nil {
			continue
		}
		if gen.Image == nil || len(gen.Image.ImageBytes) == 0 {
			// ペイロードのない候補は安全フィルターで除外されたもの
			if gen.RAIFilteredReason != "" {
				reasons = append(reasons, gen.RAIFilteredReason)
				slog.Warn("生成画像がフィルターされました", "index", i, "reason", gen.RAIFilteredReason)
			}
			continue
		}
		images = append(images, toImage(gen.Image))
		if len(images) == NumberOfImages {
			break
		}
	}

	if len(images) == 0 {
		if len(reasons) > 0 {
			return nil, &GenerationError{Kind: KindFiltered, Reason: strings.Join(reasons, "; "), Err: errImagesFiltered}
		}
		return nil, &GenerationError{Kind: KindEmpty, Err: errNoImages}
	}
	return images, nil
}

// toImage はペイロードを加工せずに domain.Image に詰め替え、ヘッダーから寸法を補完します。
func toImage(img *genai.Image) domain.Image {
	out := domain.Image{
		Data:     img.ImageBytes,
		MimeType: img.MIMEType,
	}

	info, err := imgutil.Inspect(img.ImageBytes)
	if err != nil {
		slog.Warn("画像ヘッダーを解析できませんでした", "error", err)
	}
	if out.MimeType == "" {
		out.MimeType = info.MimeType
	}
	if out.MimeType == "" {
		out.MimeType = OutputMIMEType
	}
	out.Width = info.Width
	out.Height = info.Height
	return out
}
