package nirc

import (
	"time"

	"github.com/araddon/dateparse"
)

// StartTask launches the driver for t as an independent goroutine. It does
// not block. The driver increments CurrentRepeat before each invocation,
// so the first call observes CurrentRepeat() == 1, then sleeps Interval
// seconds between iterations. It exits as soon as Bot.IsRunning() goes
// false, or MaxRepeat is reached (MaxRepeat <= 0 means unbounded), or the
// handler returns an error.
func (b *Bot) StartTask(t *Task, args ...any) {
	go b.runTask(t, args...)
}

func (b *Bot) runTask(t *Task, args ...any) {
	for b.IsRunning() {
		if t.MaxRepeat > 0 && t.CurrentRepeat() >= t.MaxRepeat {
			return
		}

		t.bumpRepeat()

		if err := b.runTaskOnce(t, args...); err != nil {
			b.logger.Printf("TASK", "task %q failed on repeat %d: %v", t.ID, t.CurrentRepeat(), err)
			return
		}

		time.Sleep(time.Duration(t.Interval * float64(time.Second)))
	}
}

func (b *Bot) runTaskOnce(t *Task, args ...any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("ERROR", "task %q panicked: %v", t.ID, r)
		}
	}()
	return t.Handler(b, args...)
}

// ParseAnchorTime parses a loosely-formatted time string supplied by a cog
// (e.g. scheduling "run next at 18:00" or a human-supplied "--since" CLI
// flag) without requiring a fixed layout.
func ParseAnchorTime(s string) (time.Time, error) {
	return dateparse.ParseAny(s)
}
