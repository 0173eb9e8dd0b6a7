package keypad

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlayStartsNormal(t *testing.T) {
	o := NewOverlay()
	assert.Equal(t, ModeNormal, o.Mode())
	assert.True(t, o.AcceptsInput())
	assert.True(t, o.LinkUp())

	_, locked := o.LockEnd()
	assert.False(t, locked)
}

func TestOverlayWaiting(t *testing.T) {
	o := NewOverlay()

	tr := o.Disconnected(time.Second)
	assert.Equal(t, Transition{From: ModeNormal, To: ModeWaiting}, tr)
	assert.False(t, o.AcceptsInput())
	assert.Equal(t, time.Second, o.Since())

	assert.False(t, o.Disconnected(2*time.Second).Changed(), "repeated disconnect")

	tr = o.Connected(3 * time.Second)
	assert.Equal(t, Transition{From: ModeWaiting, To: ModeNormal}, tr)
	assert.True(t, o.AcceptsInput())
}

func TestOverlayLockExpiry(t *testing.T) {
	o := NewOverlay()
	o.Lock(10*time.Second, 2*time.Second)

	end, locked := o.LockEnd()
	assert.True(t, locked)
	assert.Equal(t, 12*time.Second, end)

	assert.False(t, o.Expire(11*time.Second).Changed())
	assert.False(t, o.Expire(12*time.Second).Changed(), "expiry needs now past the deadline")

	tr := o.Expire(12*time.Second + time.Millisecond)
	assert.Equal(t, Transition{From: ModeLocked, To: ModeNormal}, tr)
	_, locked = o.LockEnd()
	assert.False(t, locked)
}

func TestOverlayRelockReplacesDeadline(t *testing.T) {
	o := NewOverlay()
	o.Lock(0, 60*time.Second)

	tr := o.Lock(time.Second, 0)
	assert.False(t, tr.Changed())
	assert.Equal(t, time.Duration(0), o.Since(), "relock keeps the animation origin")

	assert.True(t, o.Expire(time.Second+time.Millisecond).Changed())
}

func TestOverlayNegativeLockDuration(t *testing.T) {
	o := NewOverlay()
	o.Lock(5*time.Second, -time.Hour)

	end, _ := o.LockEnd()
	assert.Equal(t, 5*time.Second, end)
}

func TestOverlayPrecedence(t *testing.T) {
	t.Run("disconnect during lock keeps the lock", func(t *testing.T) {
		o := NewOverlay()
		o.Lock(0, 5*time.Second)

		assert.False(t, o.Disconnected(time.Second).Changed())
		assert.Equal(t, ModeLocked, o.Mode())
		assert.False(t, o.LinkUp())

		tr := o.Expire(6 * time.Second)
		assert.Equal(t, Transition{From: ModeLocked, To: ModeWaiting}, tr)
	})

	t.Run("reconnect during lock keeps the lock", func(t *testing.T) {
		o := NewOverlay()
		o.Lock(0, 5*time.Second)
		o.Disconnected(time.Second)

		assert.False(t, o.Connected(2*time.Second).Changed())
		assert.Equal(t, ModeLocked, o.Mode())

		assert.Equal(t, ModeNormal, o.Expire(6*time.Second).To)
	})

	t.Run("lock while waiting wins", func(t *testing.T) {
		o := NewOverlay()
		o.Disconnected(0)

		tr := o.Lock(time.Second, 5*time.Second)
		assert.Equal(t, Transition{From: ModeWaiting, To: ModeLocked}, tr)

		assert.Equal(t, ModeWaiting, o.Expire(7*time.Second).To)
	})
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "waiting", ModeWaiting.String())
	assert.Equal(t, "locked", ModeLocked.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
