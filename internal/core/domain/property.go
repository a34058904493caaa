package domain

import "time"

// Property types accepted by validation.
const (
	PropertyApartment = "apartment"
	PropertyHouse     = "house"
	PropertyTownhouse = "townhouse"
	PropertyStudio    = "studio"
)

// Property is a rental listing. Name is the human-facing identity and is
// unique (case-insensitively) among active listings. Broker holds the owning
// broker's email, a lookup key the storage layer does not enforce as a
// foreign key. RentedOut=false means the listing is available.
type Property struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	Pincode            string    `json:"pincode"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Type               string    `json:"type"`
	Beds               int       `json:"beds"`
	Bath               int       `json:"bath"`
	Balcony            int       `json:"balcony"`
	CentralAir         bool      `json:"central_air"`
	PetFriendly        bool      `json:"pet_friendly"`
	PartyFriendly      bool      `json:"party_friendly"`
	Garage             bool      `json:"garage"`
	NearbyMedical      string    `json:"nearby_medical"`
	NearbySchools      string    `json:"nearby_schools"`
	NearbyCommute      string    `json:"nearby_commute"`
	Rent               float64   `json:"rent"`
	Brokerage          float64   `json:"brokerage"`
	Deposit            float64   `json:"deposit"`
	MinimumLeasePeriod int       `json:"minimum_lease_period"` // months
	Images             []string  `json:"images"`
	Broker             string    `json:"broker"`
	RentedOut          bool      `json:"rented_out"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Validate checks every field a listing must carry before it is persisted.
// The id is intentionally not checked here: creation has none yet and update
// verifies it separately.
func (p *Property) Validate() error {
	if err := RequireString("name", p.Name); err != nil {
		return err
	}
	if err := RequireString("address", p.Address); err != nil {
		return err
	}
	if err := ValidatePincode(p.Pincode); err != nil {
		return err
	}
	if err := RequireString("city", p.City); err != nil {
		return err
	}
	if err := RequireString("state", p.State); err != nil {
		return err
	}
	switch p.Type {
	case PropertyApartment, PropertyHouse, PropertyTownhouse, PropertyStudio:
	default:
		return validationErrorf("type must be one of apartment, house, townhouse, studio")
	}
	if p.Beds < 1 {
		return validationErrorf("beds must be at least 1")
	}
	if p.Bath < 1 {
		return validationErrorf("bath must be at least 1")
	}
	if p.Balcony < 0 {
		return validationErrorf("balcony must not be negative")
	}
	if p.Rent <= 0 {
		return validationErrorf("rent must be greater than zero")
	}
	if p.Brokerage < 0 {
		return validationErrorf("brokerage must not be negative")
	}
	if p.Deposit < 0 {
		return validationErrorf("deposit must not be negative")
	}
	if p.MinimumLeasePeriod < 1 {
		return validationErrorf("minimum lease period must be at least 1 month")
	}
	for _, img := range p.Images {
		if err := RequireString("image reference", img); err != nil {
			return err
		}
	}
	if _, err := NormalizeEmail(p.Broker); err != nil {
		return validationErrorf("broker must be a valid email address")
	}
	return nil
}
