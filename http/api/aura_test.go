package api

import (
	"testing"
	"time"

	"github.com/livingaura/aura/aura"
	"github.com/livingaura/aura/encoding/json"

	"github.com/stretchr/testify/require"
)

func TestAuraMetricsJSON(t *testing.T) {
	m := AuraMetrics{}
	m.Unmarshal(aura.Sample{
		Time:   time.Unix(1700000000, 500),
		Offset: -2.5,
		Load:   47.5,
		Score:  87.5,
	}, 3)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"timestamp": 1700000000,
		"Nunchi_AHI": {"load_percent": 47.5, "nunchi_score": 87.5},
		"Jeong_Active_Users": 3,
		"Aura_Status": "Resonant"
	}`, string(data))
}

func TestConnectResponse(t *testing.T) {
	r := ConnectResponse{}
	r.Unmarshal("192.0.2.1")

	require.Equal(t, "User 192.0.2.1 connected. Jeong score updated.", r.Message)
}

func TestCallers(t *testing.T) {
	c := Callers{}
	c.Unmarshal([]aura.Caller{
		{ID: "a", FirstSeen: time.Unix(10, 0)},
		{ID: "b", FirstSeen: time.Unix(20, 0)},
	})

	require.Equal(t, 2, c.Count)
	require.Equal(t, []Caller{{ID: "a", FirstSeen: 10}, {ID: "b", FirstSeen: 20}}, c.Callers)

	c.Unmarshal(nil)

	require.Equal(t, 0, c.Count)
	require.Equal(t, []Caller{}, c.Callers)
}
