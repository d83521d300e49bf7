// README: Fare quote handler used by the booking form before a trip is saved.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ojoto/internal/modules/pricing"
	"ojoto/internal/modules/trip"
	"ojoto/internal/types"
)

type FareHandler struct {
	calc *pricing.Calculator
}

func NewFareHandler(calc *pricing.Calculator) *FareHandler {
	return &FareHandler{calc: calc}
}

func (h *FareHandler) Quote(c *gin.Context) {
	raw, ok := c.GetQuery("distance_km")
	n := trip.NumberFromString(raw)
	if !ok || !n.Present() {
		writeServiceError(c, types.Required("distance_km"))
		return
	}
	d, err := trip.ParseDistance(n)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.calc.Quote(d))
}
