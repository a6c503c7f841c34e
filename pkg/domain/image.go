package domain

// Image は生成された1枚の間取り図です。
// Data はサービスが返したエンコード済みバイト列をそのまま保持します。
type Image struct {
	Data     []byte
	MimeType string
	Width    int // ヘッダーを解析できなかった場合は 0
	Height   int
}

// GenerationResult は1回の送信結果です。画像列かエラーメッセージのどちらか一方を持ちます。
// 永続化はされず、次の送信で破棄されます。
type GenerationResult struct {
	SubmissionID string
	Images       []Image
	Error        string
}

// Failed はエラーで終了した結果かどうかを返します。
func (r GenerationResult) Failed() bool {
	return r.Error != ""
}
