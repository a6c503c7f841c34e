package generator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseToImages(t *testing.T) {
	t.Run("正常系: N枚のペイロードをN件、同じ順序で返す", func(t *testing.T) {
		resp := &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{
			generatedImage([]byte("first")),
			generatedImage([]byte("second")),
		}}

		images, err := parseToImages(resp)
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, []byte("first"), images[0].Data)
		assert.Equal(t, []byte("second"), images[1].Data)
		// ヘッダーを解析できなくてもペイロードはそのまま返す
		assert.Equal(t, "image/png", images[0].MimeType)
		assert.Zero(t, images[0].Width)
	})

	t.Run("MIMEタイプがない場合はヘッダーから補完する", func(t *testing.T) {
		resp := &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{
			{Image: &genai.Image{ImageBytes: pngBytes(t, 5, 7)}},
		}}

		images, err := parseToImages(resp)
		require.NoError(t, err)
		assert.Equal(t, "image/png", images[0].MimeType)
		assert.Equal(t, 5, images[0].Width)
		assert.Equal(t, 7, images[0].Height)
	})

	t.Run("要求枚数を超えた画像は先頭から NumberOfImages 枚だけ返す", func(t *testing.T) {
		resp := &genai.GenerateImagesResponse{}
		for i := 0; i < NumberOfImages+2; i++ {
			resp.GeneratedImages = append(resp.GeneratedImages, generatedImage([]byte{byte('a' + i)}))
		}

		images, err := parseToImages(resp)
		require.NoError(t, err)
		require.Len(t, images, NumberOfImages)
		for i, img := range images {
			assert.Equal(t, []byte{byte('a' + i)}, img.Data)
		}
	})

	t.Run("異常系: nilレスポンス", func(t *testing.T) {
		_, err := parseToImages(nil)
		assert.Equal(t, KindEmpty, KindOf(err))
	})

	t.Run("フィルターされた候補は除外する", func(t *testing.T) {
		resp := &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{
			{RAIFilteredReason: "blocked"},
			generatedImage([]byte("kept")),
			nil,
		}}

		images, err := parseToImages(resp)
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, []byte("kept"), images[0].Data)
	})

	t.Run("異常系: すべてフィルターされた場合は filtered", func(t *testing.T) {
		resp := &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{
			{RAIFilteredReason: "reason-a"},
			{RAIFilteredReason: "reason-b"},
		}}

		_, err := parseToImages(resp)
		var ge *GenerationError
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, KindFiltered, ge.Kind)
		assert.Equal(t, "reason-a; reason-b", ge.Reason)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"401", genai.APIError{Code: 401}, KindAuth},
		{"403 (pointer)", &genai.APIError{Code: 403}, KindAuth},
		{"429", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, KindQuota},
		{"400", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, KindInvalidRequest},
		{"503", fmt.Errorf("wrapped: %w", genai.APIError{Code: 503}), KindUnavailable},
		{"canceled", context.Canceled, KindCanceled},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), KindCanceled},
		{"other", errors.New("dial tcp: refused"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ge := classify(tt.err)
			assert.Equal(t, tt.want, ge.Kind)
			// APIError はスライスを含み比較できないため DeepEqual で確認する
			assert.Equal(t, tt.err, ge.Err)
			assert.Equal(t, UserMessage, ge.UserMessage())
		})
	}
}

func TestKindOf_NonGenerationError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}
