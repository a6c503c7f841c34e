package planner

import (
	"fmt"
	"math"
	"sync"

	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
)

// SqFtPerSqM は平方メートルから平方フィートへの換算係数です。
const SqFtPerSqM = 10.764

// Bounds は面積スライダーの範囲です。
type Bounds struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

var (
	metricBounds   = Bounds{Min: 50, Max: 500, Step: 5}
	imperialBounds = Bounds{Min: 500, Max: 5000, Step: 50}
)

// SliderBounds は単位系ごとのスライダー範囲を返します。
func SliderBounds(u domain.Units) Bounds {
	if u == domain.UnitsImperial {
		return imperialBounds
	}
	return metricBounds
}

// Clamp は値をステップに丸めたうえで範囲内に収めます。
func (b Bounds) Clamp(v int) int {
	v = roundTo(float64(v), b.Step)
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Snapshot は送信時点のフォーム内容です。
type Snapshot struct {
	Requirements domain.Requirements `json:"requirements"`
	Units        domain.Units        `json:"units"`
}

// Form は要件入力フォームの状態を保持します。
// 複数のハンドラーから操作されるため、すべての変更はロックで直列化されます。
type Form struct {
	mu    sync.RWMutex
	req   domain.Requirements
	units domain.Units
}

// NewForm は既定値で初期化されたフォームを返します。
func NewForm() *Form {
	return &Form{
		req:   domain.DefaultRequirements(),
		units: domain.UnitsMetric,
	}
}

// Snapshot は現在の要件と単位系のコピーを返します。
func (f *Form) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return Snapshot{Requirements: f.req, Units: f.units}
}

// SetPlotSize は面積を設定します。値はスライダーの範囲とステップに合わせられます。
func (f *Form) SetPlotSize(v int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.req.PlotSize = SliderBounds(f.units).Clamp(v)
	return f.req.PlotSize
}

// Increment は部屋数を1つ増やします。
func (f *Form) Increment(r domain.Room) (int, error) {
	return f.adjust(r, 1)
}

// Decrement は部屋数を1つ減らします。0 未満にはなりません。
func (f *Form) Decrement(r domain.Room) (int, error) {
	return f.adjust(r, -1)
}

func (f *Form) adjust(r domain.Room, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := f.req.Count(r)
	if count == nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownRoom, r)
	}
	*count = max(0, *count+delta)
	return *count, nil
}

// SetFeature は設備の有無を設定します。
func (f *Form) SetFeature(feat domain.Feature, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	flag := f.req.Flag(feat)
	if flag == nil {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFeature, feat)
	}
	*flag = enabled
	return nil
}

// SwitchUnits は単位系を切り替え、面積を一度だけ換算します。
// 換算は丸めを伴うため、往復しても元の値に戻るとは限りません。
func (f *Form) SwitchUnits(u domain.Units) (int, error) {
	if _, err := domain.ParseUnits(string(u)); err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if u == f.units {
		return f.req.PlotSize, nil
	}
	f.units = u
	f.req.PlotSize = ConvertPlotSize(f.req.PlotSize, u)
	return f.req.PlotSize, nil
}

// ConvertPlotSize は面積を指定した単位系へ換算し、その単位のステップで丸めます。
// 換算結果はスライダーの範囲に切り詰めるため、上限付近の値は往復しても元に戻りません。
func ConvertPlotSize(size int, to domain.Units) int {
	var converted int
	var fallback int
	if to == domain.UnitsMetric {
		converted = roundTo(float64(size)/SqFtPerSqM, metricBounds.Step)
		fallback = 100
	} else {
		converted = roundTo(float64(size)*SqFtPerSqM, imperialBounds.Step)
		fallback = 1000
	}
	if converted == 0 {
		converted = fallback
	}
	return SliderBounds(to).Clamp(converted)
}

func roundTo(v float64, step int) int {
	return int(math.Round(v/float64(step))) * step
}
