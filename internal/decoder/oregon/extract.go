package oregon

import (
	"fmt"

	"github.com/Digicrat/gorfxrx/internal/nibble"
	"github.com/Digicrat/gorfxrx/internal/reading"
)

// method turns a validated payload into measurements. Methods receive the
// payload bytes, the expanded nibble array and the device identifier; all
// nibble indices and scaling factors are fixed per method.
type method func(b, nib []byte, dev string) []reading.Measurement

func commonTemp(b, nib []byte, dev string) []reading.Measurement {
	return []reading.Measurement{temperature(b), simpleBattery(b)}
}

func commonTempHydro(b, nib []byte, dev string) []reading.Measurement {
	return []reading.Measurement{temperature(b), humidity(b), simpleBattery(b)}
}

func altTempHydro(b, nib []byte, dev string) []reading.Measurement {
	return []reading.Measurement{temperature(b), humidity(b), percentageBattery(b)}
}

func commonTempHydroBaro(b, nib []byte, dev string) []reading.Measurement {
	return []reading.Measurement{
		temperature(b), humidity(b),
		pressure(b, nibble.Lo(b[9]), 795),
		simpleBattery(b),
	}
}

func altTempHydroBaro(b, nib []byte, dev string) []reading.Measurement {
	return []reading.Measurement{
		temperature(b), humidity(b),
		pressure(b, nibble.Hi(b[9]), 856),
		percentageBattery(b),
	}
}

func wtgr800Anemometer(b, nib []byte, dev string) []reading.Measurement {
	dir := float64(nibble.Hi(b[4])) * 22.5
	speed := float64(nibble.Lo(b[7]))*10 + float64(nibble.Hi(b[6])) +
		float64(nibble.Lo(b[6]))/10
	avg := float64(nibble.Lo(b[8]))*10 + float64(nibble.Hi(b[8]))
	return []reading.Measurement{
		{Kind: reading.Speed, Value: speed, Units: "mps", Average: &avg},
		{Kind: reading.Direction, Value: dir, Units: "degrees"},
		percentageBattery(b),
	}
}

func wgr918Anemometer(b, nib []byte, dev string) []reading.Measurement {
	dir := float64(nibble.Lo(b[5]))*100 + float64(nibble.Hi(b[4]))*10 +
		float64(nibble.Lo(b[4]))
	speed := float64(nibble.Lo(b[7]))*10 + float64(nibble.Hi(b[6])) +
		float64(nibble.Lo(b[6]))/10
	avg := float64(nibble.Lo(b[8]))*10 + float64(nibble.Hi(b[7])) +
		float64(nibble.Hi(b[8]))/10
	return []reading.Measurement{
		{Kind: reading.Speed, Value: speed, Units: "mps", Average: &avg},
		{Kind: reading.Direction, Value: dir, Units: "degrees"},
		simpleBattery(b),
	}
}

func commonRain(b, nib []byte, dev string) []reading.Measurement {
	rate := float64(nibble.Lo(b[5]))*100 + float64(nibble.Hi(b[4]))*10 +
		float64(nibble.Lo(b[4]))
	total := float64(nibble.Lo(b[7]))*1000 + float64(nibble.Hi(b[6]))*100 +
		float64(nibble.Lo(b[6]))*10 + float64(nibble.Hi(b[5]))
	return []reading.Measurement{
		{Kind: reading.RainRate, Value: rate, Units: "mm/h"},
		{Kind: reading.RainTotal, Value: total, Units: "mm"},
		simpleBattery(b),
	}
}

func pcr800Rain(b, nib []byte, dev string) []reading.Measurement {
	// Values arrive in hundredths of an inch; convert to metric.
	rate := (float64(nibble.Hi(b[6]))*100 + float64(nibble.Lo(b[6]))*10 +
		float64(nibble.Hi(b[5])) + float64(nibble.Lo(b[5]))/10) * 0.254
	total := (float64(nibble.Lo(b[8]))*1000 + float64(nibble.Hi(b[7]))*100 +
		float64(nibble.Lo(b[7]))*10 + float64(nibble.Hi(b[8]))) * 0.254
	flips := float64(nibble.Lo(b[4]))*10 + float64(nibble.Hi(b[4]))
	return []reading.Measurement{
		{Kind: reading.RainRate, Value: rate, Units: "mm/h"},
		{Kind: reading.RainTotal, Value: total, Units: "mm"},
		{Kind: reading.RainCount, Value: flips},
		percentageBattery(b),
	}
}

func uv138(b, nib []byte, dev string) []reading.Measurement {
	idx := float64(nibble.Lo(b[5]))*10 + float64(nibble.Hi(b[4]))
	return []reading.Measurement{
		{Kind: reading.UV, Value: idx, Qualifier: uvRisk(idx)},
		simpleBattery(b),
	}
}

func uvn800(b, nib []byte, dev string) []reading.Measurement {
	idx := float64(nibble.Hi(b[4]))
	return []reading.Measurement{
		{Kind: reading.UV, Value: idx, Qualifier: uvRisk(idx)},
		percentageBattery(b),
	}
}

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func dateTime(b, nib []byte, dev string) []reading.Measurement {
	hour := nibble.Lo(b[7])*10 + nibble.Hi(b[6])
	minute := nibble.Lo(b[6])*10 + nibble.Hi(b[5])
	second := nibble.Lo(b[5])*10 + nibble.Hi(b[4])
	day := nibble.Lo(b[9])*10 + nibble.Hi(b[8])
	month := nibble.Hi(b[9])
	year := 2000 + nibble.Lo(b[10])*10 + nibble.Hi(b[10])
	weekday := ""
	if wd := int(b[8] & 0x07); wd >= 1 && wd <= 7 {
		weekday = weekdays[wd-1]
	}
	text := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		year, month, day, hour, minute, second)
	return []reading.Measurement{
		{Kind: reading.DateTime, Text: text, Qualifier: weekday},
	}
}

func temperature(b []byte) reading.Measurement {
	t := float64(nibble.Hi(b[5]))*10 + float64(nibble.Lo(b[5])) +
		float64(nibble.Hi(b[4]))/10
	if b[6]&0x08 != 0 {
		t = -t
	}
	return reading.Measurement{Kind: reading.Temp, Value: t, Units: "C"}
}

var comfortBands = []string{"normal", "comfortable", "dry", "wet"}

func humidity(b []byte) reading.Measurement {
	h := float64(nibble.Lo(b[7]))*10 + float64(nibble.Hi(b[6]))
	return reading.Measurement{
		Kind:      reading.Humidity,
		Value:     h,
		Units:     "%",
		Qualifier: comfortBands[b[7]>>6],
	}
}

var forecasts = map[int]string{
	0xC: "sunny",
	0x6: "partly",
	0x2: "cloudy",
	0x3: "rain",
}

func pressure(b []byte, forecastNibble, offset int) reading.Measurement {
	forecast, ok := forecasts[forecastNibble]
	if !ok {
		forecast = "unknown"
	}
	return reading.Measurement{
		Kind:      reading.Pressure,
		Value:     float64(int(b[8]) + offset),
		Units:     "hPa",
		Qualifier: forecast,
	}
}

func simpleBattery(b []byte) reading.Measurement {
	bat := 90.0
	if b[4]&0x04 != 0 {
		bat = 10
	}
	return reading.Measurement{Kind: reading.Battery, Value: bat, Units: "%"}
}

func percentageBattery(b []byte) reading.Measurement {
	return reading.Measurement{
		Kind:  reading.Battery,
		Value: float64(100 - 10*nibble.Lo(b[4])),
		Units: "%",
	}
}

func uvRisk(idx float64) string {
	switch {
	case idx < 3:
		return "low"
	case idx < 6:
		return "medium"
	case idx < 8:
		return "high"
	case idx < 11:
		return "very high"
	default:
		return "extreme"
	}
}
