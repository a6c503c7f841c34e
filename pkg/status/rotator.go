package status

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultInterval は表示メッセージを切り替える間隔です。
const DefaultInterval = 2500 * time.Millisecond

// DefaultMessages は生成待ちの間に表示するメッセージです。
var DefaultMessages = []string{
	"Sketching initial concepts...",
	"Arranging rooms and spaces...",
	"Adding architectural details...",
	"Rendering high-resolution plans...",
	"Almost there, finalizing layouts...",
}

// Rotator は一定間隔でメッセージを切り替える周期タスクです。
type Rotator struct {
	messages []string
	interval time.Duration
	pick     func(n int) int
}

// Option は Rotator の設定を変更します。
type Option func(*Rotator)

// WithMessages は表示メッセージを差し替えます。
func WithMessages(msgs []string) Option {
	return func(r *Rotator) {
		if len(msgs) > 0 {
			r.messages = msgs
		}
	}
}

// WithPicker は次のメッセージの選び方を差し替えます。pick は [0, n) を返す必要があります。
func WithPicker(pick func(n int) int) Option {
	return func(r *Rotator) {
		if pick != nil {
			r.pick = pick
		}
	}
}

// NewRotator は Rotator を生成します。interval が 0 以下なら DefaultInterval を使います。
func NewRotator(interval time.Duration, opts ...Option) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	r := &Rotator{
		messages: DefaultMessages,
		interval: interval,
		pick:     rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start は最初のメッセージを同期的に通知したあと、周期的な切り替えを開始します。
// 返される stop は何度呼んでもよく、バックグラウンドの goroutine が終了するまで戻りません。
// stop から戻った後に onChange が呼ばれることはありません。
func (r *Rotator) Start(onChange func(string)) (stop func()) {
	onChange(r.messages[0])

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				onChange(r.messages[r.pick(len(r.messages))])
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-exited
	}
}
