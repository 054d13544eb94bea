// Package system provides the production implementations of the time ports.
package system

import (
	"time"

	"github.com/aretw0/superdense/pkg/ports"
)

// Clock implements ports.Clock on top of the time package.
type Clock struct{}

var _ ports.Clock = Clock{}

func (Clock) Now() time.Time {
	return time.Now()
}

func (Clock) NewTicker(d time.Duration) ports.Ticker {
	return &ticker{t: time.NewTicker(d)}
}

type ticker struct {
	t *time.Ticker
}

func (t *ticker) C() <-chan time.Time {
	return t.t.C
}

func (t *ticker) Stop() {
	t.t.Stop()
}
