package handler

import (
	"github.com/offcampus/housing-api/internal/core/domain"
	"github.com/offcampus/housing-api/internal/core/ports"
)

type propertyRequest struct {
	Name               string   `json:"name"                 validate:"required"`
	Address            string   `json:"address"              validate:"required"`
	Pincode            string   `json:"pincode"              validate:"required"`
	City               string   `json:"city"                 validate:"required"`
	State              string   `json:"state"                validate:"required"`
	Type               string   `json:"type"                 validate:"required,oneof=apartment house townhouse studio"`
	Beds               int      `json:"beds"                 validate:"gt=0"`
	Bath               int      `json:"bath"                 validate:"gt=0"`
	Balcony            int      `json:"balcony"              validate:"gte=0"`
	CentralAir         bool     `json:"central_air"`
	PetFriendly        bool     `json:"pet_friendly"`
	PartyFriendly      bool     `json:"party_friendly"`
	Garage             bool     `json:"garage"`
	NearbyMedical      string   `json:"nearby_medical"`
	NearbySchools      string   `json:"nearby_schools"`
	NearbyCommute      string   `json:"nearby_commute"`
	Rent               float64  `json:"rent"                 validate:"gt=0"`
	Brokerage          float64  `json:"brokerage"            validate:"gte=0"`
	Deposit            float64  `json:"deposit"              validate:"gte=0"`
	MinimumLeasePeriod int      `json:"minimum_lease_period" validate:"gt=0"`
	Images             []string `json:"images"`
}

// toInput converts the request into the service DTO. Free-text fields are
// sanitized here; the broker identity always comes from the caller's token.
func (r *propertyRequest) toInput(id, brokerEmail string) ports.PropertyInput {
	return ports.PropertyInput{
		ID:                 id,
		Name:               sanitize(r.Name),
		Address:            sanitize(r.Address),
		Pincode:            sanitize(r.Pincode),
		City:               sanitize(r.City),
		State:              sanitize(r.State),
		Type:               sanitize(r.Type),
		Beds:               r.Beds,
		Bath:               r.Bath,
		Balcony:            r.Balcony,
		CentralAir:         r.CentralAir,
		PetFriendly:        r.PetFriendly,
		PartyFriendly:      r.PartyFriendly,
		Garage:             r.Garage,
		NearbyMedical:      sanitize(r.NearbyMedical),
		NearbySchools:      sanitize(r.NearbySchools),
		NearbyCommute:      sanitize(r.NearbyCommute),
		Rent:               r.Rent,
		Brokerage:          r.Brokerage,
		Deposit:            r.Deposit,
		MinimumLeasePeriod: r.MinimumLeasePeriod,
		Images:             sanitizeAll(r.Images),
		Broker:             brokerEmail,
	}
}

type propertyListResponse struct {
	Count      int                `json:"count"`
	Properties []*domain.Property `json:"properties"`
}

type removePropertyResponse struct {
	PropertyID string `json:"property_id"`
	Broker     string `json:"broker"`
}
