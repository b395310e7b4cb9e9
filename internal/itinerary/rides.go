package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripplanner/internal/models/db_models"
	"tripplanner/internal/pricing"
)

// RideWarning is returned by the model instead of options when the request
// cannot be served (budget too low, too many passengers).
type RideWarning struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type RideResult struct {
	Options []db_models.RideOption
	Warning *RideWarning
}

// ParseRideOptions reads the model's ride suggestions. The payload is a JSON
// array of options, or an array holding a single warning object. Option IDs
// are left empty for the caller to assign.
func ParseRideOptions(raw string) (*RideResult, error) {
	cleaned := ExtractJSON(raw)
	var probe json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	items, ok := asArray(probe)
	if !ok {
		o, isObj := asObject(probe)
		if !isObj {
			return nil, fmt.Errorf("%w: ride options must be a list", ErrMalformedJSON)
		}
		if v, found := o.get("rides", "rideOptions", "options"); found {
			items, ok = asArray(v)
		}
		if !ok {
			items = []json.RawMessage{probe}
		}
	}

	res := &RideResult{Options: make([]db_models.RideOption, 0, len(items))}
	for i, item := range items {
		o, ok := asObject(item)
		if !ok {
			return nil, fmt.Errorf("%w: ride option %d must be an object", ErrMissingField, i)
		}
		if strings.EqualFold(o.str("type"), "warning") {
			res.Warning = &RideWarning{
				Title:   orDefault(o.str("title"), "Unable to find rides"),
				Message: orDefault(o.str("message"), "The ride request could not be served."),
			}
			res.Options = res.Options[:0]
			return res, nil
		}

		company := o.str("company", "provider")
		if company == "" {
			return nil, fmt.Errorf("%w: ride option %d company", ErrMissingField, i)
		}
		opt := db_models.RideOption{
			Company:              company,
			VehicleType:          orDefault(o.str("vehicleType", "vehicle"), NotAvailable),
			VehicleModel:         orDefault(o.str("vehicleModel", "model"), NotAvailable),
			CostText:             orDefault(o.str("cost", "price", "fare"), NotAvailable),
			Duration:             orDefault(o.str("duration"), NotAvailable),
			Distance:             orDefault(o.str("distance"), NotAvailable),
			EstimatedArrivalTime: orDefault(o.str("estimatedArrivalTime", "eta"), NotAvailable),
		}
		if v, ok := o.get("amenities"); ok {
			opt.Amenities = asStrings(v)
		}
		if opt.Amenities == nil {
			opt.Amenities = []string{}
		}
		if fare, err := pricing.RideCosts.Extract(opt.CostText); err == nil {
			opt.Fare = &fare
		}
		res.Options = append(res.Options, opt)
	}
	return res, nil
}
