package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
)

// Info は画像ペイロードのヘッダーから読み取ったメタデータです。
type Info struct {
	Format   string
	MimeType string
	Width    int
	Height   int
}

// Inspect は画像データのヘッダーのみを解析し、形式と寸法を返します。
// ピクセルのデコードや再エンコードは行いません。
func Inspect(data []byte) (Info, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return Info{}, fmt.Errorf("画像データではありません (detected: %s)", mimeType)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{MimeType: mimeType}, fmt.Errorf("画像ヘッダーの解析に失敗しました: %w", err)
	}

	return Info{
		Format:   format,
		MimeType: mimeType,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}
