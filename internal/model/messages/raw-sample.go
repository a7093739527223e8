package messages

import "time"

// RawSample is one high-frequency sensor reading as it arrives from the
// field, either as a CSV row or as an MQTT payload on sensor/raw/#.
// Readings are pointers: a nil field means the sensor did not report that
// variable in this sample.
type RawSample struct {
	StationID string    `json:"station_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	Temperature *float64 `json:"temperature,omitempty"`   // °C
	Humidity    *float64 `json:"humidity,omitempty"`      // %RH
	LightVis    *float64 `json:"light_vis,omitempty"`     // lux, visible band
	LightIR     *float64 `json:"light_ir,omitempty"`      // lux, infrared band
	SoilMoist   *float64 `json:"soil_moisture,omitempty"` // %vol
	SoilTemp    *float64 `json:"soil_temp,omitempty"`     // °C
}
