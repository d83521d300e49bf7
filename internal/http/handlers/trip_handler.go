// README: Trip handlers for create/list/get/update/delete, scoped to the caller.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ojoto/internal/modules/trip"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

type createTripReq struct {
	OriginAddress      string      `json:"origin_address"`
	DestinationAddress string      `json:"destination_address"`
	Date               string      `json:"date"`
	Time               string      `json:"time"`
	DistanceKm         trip.Number `json:"distance_km"`
	OriginLat          trip.Number `json:"origin_lat"`
	OriginLng          trip.Number `json:"origin_lng"`
	DestLat            trip.Number `json:"dest_lat"`
	DestLng            trip.Number `json:"dest_lng"`
}

// updateTripReq has no fare field; a client-sent fare is dropped on decode.
type updateTripReq struct {
	OriginAddress      *string     `json:"origin_address"`
	DestinationAddress *string     `json:"destination_address"`
	Date               *string     `json:"date"`
	Time               *string     `json:"time"`
	DistanceKm         trip.Number `json:"distance_km"`
	OriginLat          trip.Number `json:"origin_lat"`
	OriginLng          trip.Number `json:"origin_lng"`
	DestLat            trip.Number `json:"dest_lat"`
	DestLng            trip.Number `json:"dest_lng"`
}

type tripResp struct {
	ID                 int64    `json:"id"`
	OriginAddress      string   `json:"origin_address"`
	DestinationAddress string   `json:"destination_address"`
	OriginLat          *float64 `json:"origin_lat"`
	OriginLng          *float64 `json:"origin_lng"`
	DestLat            *float64 `json:"dest_lat"`
	DestLng            *float64 `json:"dest_lng"`
	DistanceKm         float64  `json:"distance_km"`
	Fare               float64  `json:"fare"`
	Date               string   `json:"date"`
	Time               string   `json:"time"`
	Status             string   `json:"status"`
	CreatedAt          string   `json:"created_at"`
}

type tripEnvelope struct {
	Msg  string   `json:"msg,omitempty"`
	Trip tripResp `json:"trip"`
}

func toTripResp(t *trip.Trip) tripResp {
	r := tripResp{
		ID:                 t.ID,
		OriginAddress:      t.OriginAddress,
		DestinationAddress: t.DestinationAddress,
		DistanceKm:         t.DistanceKm,
		Fare:               t.Fare,
		Date:               t.Date,
		Time:               t.Time,
		Status:             string(t.Status),
		CreatedAt:          t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p := t.Origin; p != nil {
		r.OriginLat, r.OriginLng = &p.Lat, &p.Lng
	}
	if p := t.Destination; p != nil {
		r.DestLat, r.DestLng = &p.Lat, &p.Lng
	}
	return r
}

// tripID answers 404 for ids that could never exist, same as an unknown id.
func tripID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusNotFound, trip.ErrNotFound.Error())
		return 0, false
	}
	return id, true
}

func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.trips.Create(c.Request.Context(), callerID(c), trip.CreateInput{
		OriginAddress:      req.OriginAddress,
		DestinationAddress: req.DestinationAddress,
		Date:               req.Date,
		Time:               req.Time,
		DistanceKm:         req.DistanceKm,
		OriginLat:          req.OriginLat,
		OriginLng:          req.OriginLng,
		DestLat:            req.DestLat,
		DestLng:            req.DestLng,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, tripEnvelope{Msg: "Trip created", Trip: toTripResp(t)})
}

func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context(), callerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]tripResp, 0, len(trips))
	for i := range trips {
		out = append(out, toTripResp(&trips[i]))
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *TripHandler) Get(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	t, err := h.trips.Get(c.Request.Context(), callerID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tripEnvelope{Trip: toTripResp(t)})
}

func (h *TripHandler) Update(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	var req updateTripReq
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.trips.Update(c.Request.Context(), callerID(c), id, trip.Patch{
		OriginAddress:      req.OriginAddress,
		DestinationAddress: req.DestinationAddress,
		Date:               req.Date,
		Time:               req.Time,
		DistanceKm:         req.DistanceKm,
		OriginLat:          req.OriginLat,
		OriginLng:          req.OriginLng,
		DestLat:            req.DestLat,
		DestLng:            req.DestLng,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tripEnvelope{Trip: toTripResp(t)})
}

func (h *TripHandler) Delete(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}
	if err := h.trips.Delete(c.Request.Context(), callerID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, msgResponse{Msg: "Trip deleted successfully"})
}
