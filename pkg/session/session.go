package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/gemini-floorplan-kit/internal/metrics"
	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
	"github.com/shouni/gemini-floorplan-kit/pkg/generator"
	"github.com/shouni/gemini-floorplan-kit/pkg/planner"
	"github.com/shouni/gemini-floorplan-kit/pkg/status"
)

// ErrSubmissionInProgress は生成中に再送信された場合に返されます。
var ErrSubmissionInProgress = errors.New("submission already in progress")

// State は結果パネルの表示状態です。4つの状態は排他的です。
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

// Panel は結果パネルの状態です。
type Panel struct {
	State         State
	SubmissionID  string
	StatusMessage string
	Error         string
	Images        []domain.Image
}

type submission struct {
	id       string
	snapshot planner.Snapshot
}

// Session はフォームと1件の送信ライフサイクルを管理します。
// 送信は同時に1件までで、実行中の送信はキャンセルされません。
type Session struct {
	form    *planner.Form
	gen     generator.FloorPlanGenerator
	rotator *status.Rotator

	mu    sync.Mutex
	panel Panel
}

// New は依存関係を注入して Session を初期化します。
func New(form *planner.Form, gen generator.FloorPlanGenerator, rotator *status.Rotator) (*Session, error) {
	if form == nil {
		return nil, fmt.Errorf("form is required")
	}
	if gen == nil {
		return nil, fmt.Errorf("gen (FloorPlanGenerator) is required")
	}
	if rotator == nil {
		rotator = status.NewRotator(status.DefaultInterval)
	}
	return &Session{
		form:    form,
		gen:     gen,
		rotator: rotator,
		panel:   Panel{State: StateIdle},
	}, nil
}

// Form は編集中のフォームを返します。
func (s *Session) Form() *planner.Form { return s.form }

// Panel は結果パネルのコピーを返します。
func (s *Session) Panel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.panel
	p.Images = append([]domain.Image(nil), s.panel.Images...)
	return p
}

// Submit は現在のフォーム内容で生成を行い、完了まで待ちます。
func (s *Session) Submit(ctx context.Context) (domain.GenerationResult, error) {
	sub, err := s.begin()
	if err != nil {
		return domain.GenerationResult{}, err
	}
	return s.run(ctx, sub), nil
}

// Start は送信を受け付けて読み込み中に遷移し、生成をバックグラウンドで実行します。
// 返されるチャネルには完了時に結果が1件だけ送られます。
func (s *Session) Start(ctx context.Context) (string, <-chan domain.GenerationResult, error) {
	sub, err := s.begin()
	if err != nil {
		return "", nil, err
	}

	done := make(chan domain.GenerationResult, 1)
	go func() {
		done <- s.run(ctx, sub)
		close(done)
	}()
	return sub.id, done, nil
}

func (s *Session) begin() (submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panel.State == StateLoading {
		return submission{}, ErrSubmissionInProgress
	}

	sub := submission{id: uuid.NewString(), snapshot: s.form.Snapshot()}
	// 前回の画像とエラーはここで破棄する
	s.panel = Panel{State: StateLoading, SubmissionID: sub.id}
	return sub, nil
}

func (s *Session) run(ctx context.Context, sub submission) domain.GenerationResult {
	// 呼び出し元のリクエストが終わっても生成は最後まで実行する
	ctx = context.WithoutCancel(ctx)

	stop := s.rotator.Start(func(msg string) { s.setStatus(sub.id, msg) })

	metrics.GenerationInFlight.Inc()
	started := time.Now()
	images, err := s.gen.Generate(ctx, sub.snapshot.Requirements, sub.snapshot.Units)
	metrics.GenerationDuration.Observe(time.Since(started).Seconds())
	metrics.GenerationInFlight.Dec()

	stop()

	result := domain.GenerationResult{SubmissionID: sub.id}
	if err != nil {
		kind := generator.KindOf(err)
		metrics.GenerationRequests.WithLabelValues(string(kind)).Inc()
		slog.ErrorContext(ctx, "間取り図の生成に失敗しました",
			"submission_id", sub.id, "kind", string(kind), "error", err)
		result.Error = userMessage(err)
	} else {
		metrics.GenerationRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
		metrics.GeneratedImages.Add(float64(len(images)))
		result.Images = images
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Failed() {
		s.panel = Panel{State: StateError, SubmissionID: sub.id, Error: result.Error}
	} else {
		s.panel = Panel{State: StateReady, SubmissionID: sub.id, Images: result.Images}
	}
	return result
}

func (s *Session) setStatus(id, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panel.State == StateLoading && s.panel.SubmissionID == id {
		s.panel.StatusMessage = msg
	}
}

func userMessage(err error) string {
	var ge *generator.GenerationError
	if errors.As(err, &ge) {
		return ge.UserMessage()
	}
	return generator.UserMessage
}
