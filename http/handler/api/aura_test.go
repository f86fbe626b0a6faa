package api

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/livingaura/aura/aura"
	"github.com/livingaura/aura/http/api"
	"github.com/livingaura/aura/http/mock"
	"github.com/livingaura/aura/math/rand"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func getDummyAuraRouter(t *testing.T, source rand.Source) (*echo.Echo, aura.Tracker) {
	router := mock.DummyEcho()

	generator, err := aura.NewGenerator(aura.GeneratorConfig{
		BaseLoad:    aura.DefaultBaseLoad,
		Fluctuation: aura.DefaultFluctuation,
		Source:      source,
		Window:      10 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(generator.Close)

	tracker := aura.NewTracker()

	handler := NewAura(generator, tracker, source, nil)

	router.GET("/metrics", handler.Metrics)
	router.POST("/connect", handler.Connect)
	router.GET("/aura", handler.Snapshots)
	router.GET("/callers", handler.Callers)

	return router, tracker
}

func TestMetrics(t *testing.T) {
	router, _ := getDummyAuraRouter(t, rand.Fixed{Float: 0.75})

	response := mock.Request(t, http.StatusOK, router, "GET", "/metrics", nil)

	mock.Validate(t, &api.AuraMetrics{}, response.Data)

	data := response.Data.(map[string]interface{})

	require.Equal(t, 0.0, data["Jeong_Active_Users"])
	require.Equal(t, "Resonant", data["Aura_Status"])
	require.InDelta(t, float64(time.Now().Unix()), data["timestamp"], 5)

	nunchi := data["Nunchi_AHI"].(map[string]interface{})

	require.Equal(t, 55.0, nunchi["load_percent"])
	require.Equal(t, 75.0, nunchi["nunchi_score"])
}

func TestMetricsProperties(t *testing.T) {
	router, _ := getDummyAuraRouter(t, rand.New(7))

	for i := 0; i < 200; i++ {
		response := mock.Request(t, http.StatusOK, router, "GET", "/metrics", nil)

		data := response.Data.(map[string]interface{})
		nunchi := data["Nunchi_AHI"].(map[string]interface{})

		score := nunchi["nunchi_score"].(float64)

		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 100.0)

		if score > 50 {
			require.Equal(t, "Resonant", data["Aura_Status"])
		} else {
			require.Equal(t, "Seeking Harmony", data["Aura_Status"])
		}
	}
}

func TestConnect(t *testing.T) {
	router, tracker := getDummyAuraRouter(t, nil)

	response := mock.RequestFrom(t, http.StatusOK, router, "POST", "/connect", "192.0.2.1:40000")

	mock.Validate(t, &api.ConnectResponse{}, response.Data)
	require.Equal(t, "User 192.0.2.1 connected. Jeong score updated.", response.Data.(map[string]interface{})["message"])

	mock.RequestFrom(t, http.StatusOK, router, "POST", "/connect", "192.0.2.1:40001")

	require.Equal(t, 1, tracker.Count())

	mock.RequestFrom(t, http.StatusOK, router, "POST", "/connect", "[2001:db8::1]:40000")

	require.Equal(t, 2, tracker.Count())
	require.True(t, tracker.Has("2001:db8::1"))

	response = mock.Request(t, http.StatusOK, router, "GET", "/metrics", nil)

	require.Equal(t, 2.0, response.Data.(map[string]interface{})["Jeong_Active_Users"])
}

func TestConnectWithoutAddress(t *testing.T) {
	router, tracker := getDummyAuraRouter(t, rand.Fixed{Int: 234})

	response := mock.Request(t, http.StatusOK, router, "POST", "/connect", nil)

	require.Equal(t, "User 1234 connected. Jeong score updated.", response.Data.(map[string]interface{})["message"])
	require.True(t, tracker.Has("1234"))
}

func TestConnectMethod(t *testing.T) {
	router, _ := getDummyAuraRouter(t, nil)

	mock.Request(t, http.StatusMethodNotAllowed, router, "GET", "/connect", nil)
}

func TestConnectConcurrent(t *testing.T) {
	router, _ := getDummyAuraRouter(t, nil)

	n := 200

	wg := sync.WaitGroup{}

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			mock.RequestFrom(t, http.StatusOK, router, "POST", "/connect", fmt.Sprintf("10.0.0.%d:1000", i))
		}(i)
	}

	wg.Wait()

	response := mock.Request(t, http.StatusOK, router, "GET", "/metrics", nil)

	require.Equal(t, float64(n), response.Data.(map[string]interface{})["Jeong_Active_Users"])
}

func TestSnapshots(t *testing.T) {
	router, _ := getDummyAuraRouter(t, rand.Fixed{Float: 0})

	response := mock.Request(t, http.StatusOK, router, "GET", "/aura", nil)

	mock.Validate(t, &api.AuraSnapshots{}, response.Data)

	data := response.Data.(map[string]interface{})

	require.Equal(t, 10.0, data["window_sec"])
	require.Equal(t, 1, len(data["snapshots"].([]interface{})))

	response = mock.Request(t, http.StatusOK, router, "GET", "/aura?samples=100", nil)

	data = response.Data.(map[string]interface{})
	snapshots := data["snapshots"].([]interface{})

	require.Equal(t, 100, len(snapshots))

	nunchi := snapshots[99].(map[string]interface{})["Nunchi_AHI"].(map[string]interface{})
	require.Equal(t, 40.0, nunchi["load_percent"])
	require.Equal(t, 50.0, nunchi["nunchi_score"])
	require.Equal(t, "Seeking Harmony", snapshots[99].(map[string]interface{})["Aura_Status"])
}

func TestSnapshotsInvalid(t *testing.T) {
	router, _ := getDummyAuraRouter(t, nil)

	response := mock.Request(t, http.StatusBadRequest, router, "GET", "/aura?samples=0", nil)
	mock.Validate(t, &api.Error{}, response.Data)

	mock.Request(t, http.StatusBadRequest, router, "GET", "/aura?samples=101", nil)
	mock.Request(t, http.StatusBadRequest, router, "GET", "/aura?samples=many", nil)
}

func TestCallers(t *testing.T) {
	router, _ := getDummyAuraRouter(t, nil)

	mock.RequestFrom(t, http.StatusOK, router, "POST", "/connect", "192.0.2.2:1")
	mock.RequestFrom(t, http.StatusOK, router, "POST", "/connect", "192.0.2.1:1")

	response := mock.Request(t, http.StatusOK, router, "GET", "/callers", nil)

	mock.Validate(t, &api.Callers{}, response.Data)

	data := response.Data.(map[string]interface{})
	callers := data["callers"].([]interface{})

	require.Equal(t, 2.0, data["count"])
	require.Equal(t, "192.0.2.1", callers[0].(map[string]interface{})["id"])
	require.Equal(t, "192.0.2.2", callers[1].(map[string]interface{})["id"])
}
