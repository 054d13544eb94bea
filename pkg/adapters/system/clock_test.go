package system_test

import (
	"testing"
	"time"

	"github.com/aretw0/superdense/pkg/adapters/system"
	"github.com/stretchr/testify/assert"
)

func TestClock_TickerFires(t *testing.T) {
	clk := system.Clock{}
	tk := clk.NewTicker(5 * time.Millisecond)
	defer tk.Stop()

	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
	assert.WithinDuration(t, time.Now(), clk.Now(), time.Second)
}
