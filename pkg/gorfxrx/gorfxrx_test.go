package gorfxrx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeHexSeparators(t *testing.T) {
	ev, err := DecodeHex(" |50_1A2D 48B2|4023 10443B00| ")
	require.NoError(t, err)
	require.Equal(t, "oregon", ev.Type)
	require.Equal(t, "thgr228n.b2", ev.Device)
}

func TestDecodeHexOddLength(t *testing.T) {
	_, err := DecodeHex("ABC")
	require.Error(t, err)
}

func TestDecodeHexIncomplete(t *testing.T) {
	_, err := DecodeHex("501A2D")
	require.Error(t, err)
	require.Contains(t, err.Error(), "incomplete")
}

func TestDecodeHexEmptyTelegram(t *testing.T) {
	ev, err := DecodeHex("00")
	require.NoError(t, err)
	require.Equal(t, "empty", ev.Type)
}

func TestDecodeHexUnknownTelegram(t *testing.T) {
	ev, err := DecodeHex("48FFFF00000000000000")
	require.NoError(t, err)
	require.Equal(t, "unknown", ev.Type)
	require.Empty(t, ev.Measurements)
}

func TestMeasurementAccessors(t *testing.T) {
	ev, err := DecodeHex("501A2D48B2402310443B00")
	require.NoError(t, err)

	temp, err := ev.Value("temp")
	require.NoError(t, err)
	require.InDelta(t, 23.4, temp, 1e-9)

	hum := ev.Measurement("humidity")
	require.NotNil(t, hum)
	require.Equal(t, "comfortable", hum.Qualifier)

	_, err = ev.Value("pressure")
	require.Error(t, err)
}
