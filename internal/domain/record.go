package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/tidwall/gjson"
)

// Unix timestamps above this value are read as milliseconds.
const unixMillisThreshold = 1e12

// SensorRecord is a single reading pushed over the stream. It is immutable
// once received.
type SensorRecord struct {
	Timestamp time.Time
	Payload   map[string]any
}

// ParseSensorRecord decodes a stream message. The message must be a JSON
// object with a timestamp given as an RFC3339 string or a unix number.
func ParseSensorRecord(raw []byte) (SensorRecord, error) {
	if !gjson.ValidBytes(raw) {
		return SensorRecord{}, fmt.Errorf("%w: invalid json", ErrMalformedRecord)
	}
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() {
		return SensorRecord{}, fmt.Errorf("%w: payload is not an object", ErrMalformedRecord)
	}

	timestamp, err := parseTimestamp(parsed.Get("timestamp"))
	if err != nil {
		return SensorRecord{}, err
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	payload := map[string]any{}
	if err := decoder.Decode(&payload); err != nil {
		return SensorRecord{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	return SensorRecord{Timestamp: timestamp, Payload: payload}, nil
}

func parseTimestamp(value gjson.Result) (time.Time, error) {
	switch value.Type {
	case gjson.String:
		parsed, err := time.Parse(time.RFC3339Nano, value.Str)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: timestamp %q is not RFC3339", ErrMalformedRecord, value.Str)
		}
		return parsed, nil
	case gjson.Number:
		number := value.Num
		if number < 0 || math.IsInf(number, 0) || math.IsNaN(number) {
			return time.Time{}, fmt.Errorf("%w: timestamp %v out of range", ErrMalformedRecord, number)
		}
		if number >= unixMillisThreshold {
			return time.UnixMilli(int64(number)).UTC(), nil
		}
		sec, frac := math.Modf(number)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: timestamp is missing", ErrMalformedRecord)
	}
}

// String returns the payload field as text, or "" when it is absent.
func (r SensorRecord) String(key string) string {
	value, ok := r.Payload[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Float returns a numeric payload field.
func (r SensorRecord) Float(key string) (float64, bool) {
	switch value := r.Payload[key].(type) {
	case json.Number:
		f, err := value.Float64()
		return f, err == nil
	case float64:
		return value, true
	default:
		return 0, false
	}
}
