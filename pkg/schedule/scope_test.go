package schedule_test

import (
	"testing"
	"time"

	"github.com/aretw0/sweetwater/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

func TestScope_CloseCancelsEverything(t *testing.T) {
	m := schedule.NewManual(time.Unix(0, 0))
	scope := schedule.NewScope(m)
	calls := 0

	scope.AfterFunc(10*time.Millisecond, func() { calls++ })
	scope.AfterFunc(20*time.Millisecond, func() { calls++ })
	assert.Equal(t, 2, scope.Pending())

	scope.Close()
	assert.True(t, scope.Closed())

	m.Advance(time.Second)
	assert.Zero(t, calls)
	assert.Zero(t, m.Pending())
}

func TestScope_AfterFuncOnClosedScopeIsNoop(t *testing.T) {
	m := schedule.NewManual(time.Unix(0, 0))
	scope := schedule.NewScope(m)
	scope.Close()

	ran := false
	cancel := scope.AfterFunc(0, func() { ran = true })
	cancel()

	m.Advance(time.Second)
	assert.False(t, ran)
}

func TestScope_CloseFromInsideCallback(t *testing.T) {
	m := schedule.NewManual(time.Unix(0, 0))
	scope := schedule.NewScope(m)
	var got []int

	scope.AfterFunc(10*time.Millisecond, func() {
		got = append(got, 1)
		scope.Close()
	})
	scope.AfterFunc(10*time.Millisecond, func() { got = append(got, 2) })

	m.Advance(time.Second)
	assert.Equal(t, []int{1}, got)
}

func TestScope_IndividualCancel(t *testing.T) {
	m := schedule.NewManual(time.Unix(0, 0))
	scope := schedule.NewScope(m)
	ran := false

	cancel := scope.AfterFunc(10*time.Millisecond, func() { ran = true })
	cancel()
	assert.Zero(t, scope.Pending())

	m.Advance(time.Second)
	assert.False(t, ran)
}
