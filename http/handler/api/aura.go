// Package api implements the handlers for the JSON API.
package api

import (
	"net/http"

	"github.com/livingaura/aura/aura"
	"github.com/livingaura/aura/http/api"
	"github.com/livingaura/aura/log"
	"github.com/livingaura/aura/math/rand"

	"github.com/labstack/echo/v4"
)

// The AuraHandler type provides handler functions for the simulated
// metrics and the active callers.
type AuraHandler struct {
	generator aura.Generator
	tracker   aura.Tracker
	source    rand.Source
	logger    log.Logger
}

// NewAura returns a new Aura type. The source is used for the fallback
// caller IDs; if it is nil, the default source is used.
func NewAura(generator aura.Generator, tracker aura.Tracker, source rand.Source, logger log.Logger) *AuraHandler {
	a := &AuraHandler{
		generator: generator,
		tracker:   tracker,
		source:    source,
		logger:    logger,
	}

	if a.source == nil {
		a.source = rand.Default()
	}

	if a.logger == nil {
		a.logger = log.New("")
	}

	return a
}

// Metrics returns a fresh snapshot of the simulated metrics
// @Summary Current aura metrics
// @Description Draws a new simulated load with its stability score and reports the number of active callers.
// @ID aura-metrics
// @Produce json
// @Success 200 {object} api.AuraMetrics
// @Router /metrics [get]
func (a *AuraHandler) Metrics(c echo.Context) error {
	metrics := api.AuraMetrics{}
	metrics.Unmarshal(a.generator.Sample(), a.tracker.Count())

	return c.JSON(http.StatusOK, metrics)
}

// Connect registers the calling client as an active caller
// @Summary Connect a caller
// @Description Adds the address of the client to the set of active callers. Repeated connects of the same client don't change the count.
// @ID aura-connect
// @Produce json
// @Success 200 {object} api.ConnectResponse
// @Failure 403 {object} api.Error
// @Failure 429 {object} api.Error
// @Router /connect [post]
func (a *AuraHandler) Connect(c echo.Context) error {
	id := aura.CallerID(c.RealIP(), a.source)

	if a.tracker.Connect(id) {
		a.logger.Info().WithFields(log.Fields{
			"caller":  id,
			"callers": a.tracker.Count(),
		}).Log("New caller")
	}

	response := api.ConnectResponse{}
	response.Unmarshal(id)

	return c.JSON(http.StatusOK, response)
}

// Snapshots returns a list of fresh snapshots and the load average
// @Summary List of aura metrics
// @Description Draws the requested number of snapshots and reports the average load over the sliding window.
// @ID aura-snapshots
// @Produce json
// @Param samples query integer false "Number of snapshots (1-100)"
// @Success 200 {object} api.AuraSnapshots
// @Failure 400 {object} api.Error
// @Router /api/v1/aura [get]
func (a *AuraHandler) Snapshots(c echo.Context) error {
	query := api.AuraQuery{
		Samples: 1,
	}

	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return api.Err(http.StatusBadRequest, "Invalid query", "%s", err.Error())
	}

	if err := c.Validate(query); err != nil {
		return err
	}

	callers := a.tracker.Count()

	snapshots := api.AuraSnapshots{
		Window:    int64(a.generator.Window().Seconds()),
		Snapshots: make([]api.AuraMetrics, query.Samples),
	}

	for i := range snapshots.Snapshots {
		snapshots.Snapshots[i].Unmarshal(a.generator.Sample(), callers)
	}

	snapshots.Average, snapshots.HasAverage = a.generator.Average()

	return c.JSON(http.StatusOK, snapshots)
}

// Callers returns the list of active callers
// @Summary List of active callers
// @Description List all callers that connected since the start, sorted by their ID.
// @ID aura-callers
// @Produce json
// @Success 200 {object} api.Callers
// @Router /api/v1/callers [get]
func (a *AuraHandler) Callers(c echo.Context) error {
	callers := api.Callers{}
	callers.Unmarshal(a.tracker.List())

	return c.JSON(http.StatusOK, callers)
}
