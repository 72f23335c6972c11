package services

import "github.com/schollz/progressbar/v3"

// ProgressSink receives fetch progress: a total once the run starts and
// one tick per completed unit, in completion order.
type ProgressSink interface {
	SetTotal(n int)
	Tick()
}

// NopSink discards all progress updates.
type NopSink struct{}

func (NopSink) SetTotal(int) {}
func (NopSink) Tick()        {}

// BarSink renders progress as a terminal progress bar.
type BarSink struct {
	bar *progressbar.ProgressBar
}

func NewBarSink() *BarSink {
	return &BarSink{}
}

func (s *BarSink) SetTotal(n int) {
	s.bar = progressbar.NewOptions(n,
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("img"),
	)
}

func (s *BarSink) Tick() {
	if s.bar != nil {
		_ = s.bar.Add(1)
	}
}

func (s *BarSink) Finish() {
	if s.bar != nil {
		_ = s.bar.Finish()
	}
}
