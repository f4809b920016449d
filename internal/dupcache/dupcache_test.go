package dupcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Digicrat/gorfxrx/internal/reading"
)

func TestDuplicateWindow(t *testing.T) {
	c := New(500 * time.Millisecond)
	now := time.Now()
	key := Key(80, []byte{0x1A, 0x2D, 0x01})

	require.Nil(t, c.Lookup(key))
	c.Store(key, &Entry{Type: "oregon"}, now)

	e := c.Lookup(key)
	require.NotNil(t, e)
	require.True(t, c.Touch(e, now.Add(100*time.Millisecond)), "repeat inside window")
	require.False(t, c.Touch(e, now.Add(800*time.Millisecond)), "repeat after window elapsed")
}

func TestTouchKeepsContent(t *testing.T) {
	c := New(500 * time.Millisecond)
	now := time.Now()
	key := Key(80, []byte{0x01})
	c.Store(key, &Entry{
		Type:         "oregon",
		Device:       "thgr228n.b2",
		Measurements: []reading.Measurement{{Kind: reading.Temp, Value: 23.4}},
	}, now)

	e := c.Lookup(key)
	c.Touch(e, now.Add(time.Millisecond))
	require.Equal(t, "thgr228n.b2", e.Device)
	require.Len(t, e.Measurements, 1)
	require.Equal(t, 23.4, e.Measurements[0].Value)
}

func TestKeyDistinguishesBitLength(t *testing.T) {
	require.NotEqual(t, Key(80, []byte{0x01}), Key(88, []byte{0x01}))
}

func TestClear(t *testing.T) {
	c := New(time.Second)
	c.Store(Key(80, []byte{0x01}), &Entry{}, time.Now())
	require.Equal(t, 1, c.Len())
	c.Clear()
	require.Equal(t, 0, c.Len())
	require.Nil(t, c.Lookup(Key(80, []byte{0x01})))
}
