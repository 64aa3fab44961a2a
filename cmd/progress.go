package cmd

import "github.com/gosuri/uiprogress"

// newProgress starts a progress display owned by one phase. Each phase stops
// its own instance; the package-level default cannot be restarted once stopped.
func newProgress(label string, total int) (*uiprogress.Progress, *uiprogress.Bar) {
	p := uiprogress.New()
	p.Start()
	bar := p.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return label
	})
	return p, bar
}
