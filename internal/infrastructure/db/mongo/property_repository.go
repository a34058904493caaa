package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/offcampus/housing-api/internal/core/domain"
)

const propertiesCollection = "properties"

// PropertyRepository implements ports.PropertyRepository against the
// properties collection.
type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection(propertiesCollection)}
}

// propertyDoc mirrors domain.Property. NameKey stores the lowercased name so
// the partial unique index enforces case-insensitive uniqueness among active
// listings.
type propertyDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	NameKey            string             `bson:"name_key"`
	Address            string             `bson:"address"`
	Pincode            string             `bson:"pincode"`
	City               string             `bson:"city"`
	State              string             `bson:"state"`
	Type               string             `bson:"type"`
	Beds               int                `bson:"beds"`
	Bath               int                `bson:"bath"`
	Balcony            int                `bson:"balcony"`
	CentralAir         bool               `bson:"central_air"`
	PetFriendly        bool               `bson:"pet_friendly"`
	PartyFriendly      bool               `bson:"party_friendly"`
	Garage             bool               `bson:"garage"`
	NearbyMedical      string             `bson:"nearby_medical"`
	NearbySchools      string             `bson:"nearby_schools"`
	NearbyCommute      string             `bson:"nearby_commute"`
	Rent               float64            `bson:"rent"`
	Brokerage          float64            `bson:"brokerage"`
	Deposit            float64            `bson:"deposit"`
	MinimumLeasePeriod int                `bson:"minimum_lease_period"`
	Images             []string           `bson:"images"`
	Broker             string             `bson:"broker"`
	RentedOut          bool               `bson:"rented_out"`
	IsActive           bool               `bson:"is_active"`
	CreatedAt          int64              `bson:"created_at"`
	UpdatedAt          int64              `bson:"updated_at"`
}

func docFromProperty(p *domain.Property) propertyDoc {
	return propertyDoc{
		Name:               p.Name,
		NameKey:            strings.ToLower(p.Name),
		Address:            p.Address,
		Pincode:            p.Pincode,
		City:               p.City,
		State:              p.State,
		Type:               p.Type,
		Beds:               p.Beds,
		Bath:               p.Bath,
		Balcony:            p.Balcony,
		CentralAir:         p.CentralAir,
		PetFriendly:        p.PetFriendly,
		PartyFriendly:      p.PartyFriendly,
		Garage:             p.Garage,
		NearbyMedical:      p.NearbyMedical,
		NearbySchools:      p.NearbySchools,
		NearbyCommute:      p.NearbyCommute,
		Rent:               p.Rent,
		Brokerage:          p.Brokerage,
		Deposit:            p.Deposit,
		MinimumLeasePeriod: p.MinimumLeasePeriod,
		Images:             p.Images,
		Broker:             p.Broker,
		RentedOut:          p.RentedOut,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt.Unix(),
		UpdatedAt:          p.UpdatedAt.Unix(),
	}
}

func (d *propertyDoc) toDomain() *domain.Property {
	return &domain.Property{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Address:            d.Address,
		Pincode:            d.Pincode,
		City:               d.City,
		State:              d.State,
		Type:               d.Type,
		Beds:               d.Beds,
		Bath:               d.Bath,
		Balcony:            d.Balcony,
		CentralAir:         d.CentralAir,
		PetFriendly:        d.PetFriendly,
		PartyFriendly:      d.PartyFriendly,
		Garage:             d.Garage,
		NearbyMedical:      d.NearbyMedical,
		NearbySchools:      d.NearbySchools,
		NearbyCommute:      d.NearbyCommute,
		Rent:               d.Rent,
		Brokerage:          d.Brokerage,
		Deposit:            d.Deposit,
		MinimumLeasePeriod: d.MinimumLeasePeriod,
		Images:             d.Images,
		Broker:             d.Broker,
		RentedOut:          d.RentedOut,
		IsActive:           d.IsActive,
		CreatedAt:          unixToTime(d.CreatedAt),
		UpdatedAt:          unixToTime(d.UpdatedAt),
	}
}

// Insert persists a new listing and returns the stored record with its
// generated id.
func (r *PropertyRepository) Insert(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := docFromProperty(p)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPropertyExists
		}
		return nil, fmt.Errorf("insert property: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert property: unexpected id type %T", res.InsertedID)
	}
	return r.findByObjectID(ctx, id)
}

// FindActiveByName matches the listing name case-insensitively among active
// listings.
func (r *PropertyRepository) FindActiveByName(ctx context.Context, name string) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name_key": strings.ToLower(name), "is_active": true}
	var doc propertyDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property by name: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID resolves a listing by its hex id. Inactive listings are returned
// too so callers can inspect removed records they still hold references to.
func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findByObjectID(ctx, oid)
}

func (r *PropertyRepository) findByObjectID(ctx context.Context, oid primitive.ObjectID) (*domain.Property, error) {
	var doc propertyDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return doc.toDomain(), nil
}

// ListActive returns every active listing, oldest first.
func (r *PropertyRepository) ListActive(ctx context.Context) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*domain.Property
	for cursor.Next(ctx) {
		var doc propertyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		properties = append(properties, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

// Update overwrites the mutable listing fields. Rental status, active flag
// and creation time are not touched here.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":                 p.Name,
		"name_key":             strings.ToLower(p.Name),
		"address":              p.Address,
		"pincode":              p.Pincode,
		"city":                 p.City,
		"state":                p.State,
		"type":                 p.Type,
		"beds":                 p.Beds,
		"bath":                 p.Bath,
		"balcony":              p.Balcony,
		"central_air":          p.CentralAir,
		"pet_friendly":         p.PetFriendly,
		"party_friendly":       p.PartyFriendly,
		"garage":               p.Garage,
		"nearby_medical":       p.NearbyMedical,
		"nearby_schools":       p.NearbySchools,
		"nearby_commute":       p.NearbyCommute,
		"rent":                 p.Rent,
		"brokerage":            p.Brokerage,
		"deposit":              p.Deposit,
		"minimum_lease_period": p.MinimumLeasePeriod,
		"images":               p.Images,
		"broker":               p.Broker,
		"updated_at":           time.Now().UTC().Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "is_active": true}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrPropertyExists
		}
		return fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	if res.ModifiedCount == 0 {
		return domain.ErrNoChange
	}
	return nil
}

// Deactivate soft-deletes the active listing matching name.
func (r *PropertyRepository) Deactivate(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name_key": strings.ToLower(name), "is_active": true}
	update := bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC().Unix(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("deactivate property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// SetRentedOut flips the rental flag on an active listing.
func (r *PropertyRepository) SetRentedOut(ctx context.Context, id string, rentedOut bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rented_out": rentedOut,
		"updated_at": time.Now().UTC().Unix(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "is_active": true}, update)
	if err != nil {
		return fmt.Errorf("set rented out: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// EnsureIndexes creates the properties indexes. Name uniqueness holds only
// among active listings so a removed listing frees its name.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name_key", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_active": true}),
		},
		{Keys: bson.D{{Key: "broker", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
