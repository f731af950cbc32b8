package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMarshalOmitsEmptyFields(t *testing.T) {
	event := RunEvent{
		RunID:     "run-1",
		Type:      "RunStarted",
		Timestamp: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	data, err := Marshal(event)
	require.NoError(t, err)

	s := string(data)
	require.Contains(t, s, `"run_id":"run-1"`)
	require.Contains(t, s, `"type":"RunStarted"`)
	require.NotContains(t, s, "check")
	require.NotContains(t, s, "summary")
	require.NotContains(t, s, `"error"`)
}

func TestMarshalRoundTrip(t *testing.T) {
	event := RunEvent{
		RunID:     "run-2",
		Type:      "CheckFailed",
		Check:     "spin2-structure",
		Error:     "F2 vanishes",
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}

	data, err := Marshal(event)
	require.NoError(t, err)

	var decoded RunEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, event, decoded)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	require.NoError(t, p.Publish(t.Context(), RunEvent{RunID: "x"}))
	p.Close()
}
