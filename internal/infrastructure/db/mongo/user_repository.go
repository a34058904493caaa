package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/offcampus/housing-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository against the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	FirstName            string             `bson:"first_name"`
	LastName             string             `bson:"last_name"`
	Email                string             `bson:"email"`
	UserType             string             `bson:"user_type"`
	Contact              string             `bson:"contact"`
	PasswordHash         string             `bson:"password_hash"`
	BookmarkedProperties []string           `bson:"bookmarked_properties"`
	OwnedProperties      []string           `bson:"owned_properties"`
	IsActive             bool               `bson:"is_active"`
	CreatedAt            int64              `bson:"created_at"`
	UpdatedAt            int64              `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:                   d.ID.Hex(),
		FirstName:            d.FirstName,
		LastName:             d.LastName,
		Email:                d.Email,
		Type:                 domain.UserType(d.UserType),
		Contact:              d.Contact,
		PasswordHash:         d.PasswordHash,
		BookmarkedProperties: d.BookmarkedProperties,
		OwnedProperties:      d.OwnedProperties,
		IsActive:             d.IsActive,
		CreatedAt:            unixToTime(d.CreatedAt),
		UpdatedAt:            unixToTime(d.UpdatedAt),
	}
}

// Insert persists a new user and fetches it back to return the stored record.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Email:                user.Email,
		UserType:             string(user.Type),
		Contact:              user.Contact,
		PasswordHash:         user.PasswordHash,
		BookmarkedProperties: user.BookmarkedProperties,
		OwnedProperties:      user.OwnedProperties,
		IsActive:             user.IsActive,
		CreatedAt:            user.CreatedAt.Unix(),
		UpdatedAt:            user.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return r.FindActiveByEmail(ctx, user.Email)
}

// FindActiveByEmail retrieves the active user with the given email. The
// partial unique index guarantees at most one matches.
func (r *UserRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := r.coll.FindOne(ctx, activeEmailFilter(email)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateProfile overwrites the mutable profile fields of the active user.
func (r *UserRepository) UpdateProfile(ctx context.Context, email, firstName, lastName, contact string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"first_name": firstName,
		"last_name":  lastName,
		"contact":    contact,
		"updated_at": time.Now().UTC().Unix(),
	}}
	res, err := r.coll.UpdateOne(ctx, activeEmailFilter(email), update)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	if res.ModifiedCount == 0 {
		return domain.ErrNoChange
	}
	return nil
}

// Deactivate soft-deletes the active user matching email.
func (r *UserRepository) Deactivate(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC().Unix(),
	}}
	res, err := r.coll.UpdateOne(ctx, activeEmailFilter(email), update)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) AddBookmark(ctx context.Context, email, propertyID string) error {
	return r.updateMembership(ctx, email, bson.M{"$addToSet": bson.M{"bookmarked_properties": propertyID}})
}

func (r *UserRepository) RemoveBookmark(ctx context.Context, email, propertyID string) error {
	return r.updateMembership(ctx, email, bson.M{"$pull": bson.M{"bookmarked_properties": propertyID}})
}

func (r *UserRepository) AddOwned(ctx context.Context, email, propertyID string) error {
	return r.updateMembership(ctx, email, bson.M{"$addToSet": bson.M{"owned_properties": propertyID}})
}

func (r *UserRepository) RemoveOwned(ctx context.Context, email, propertyID string) error {
	return r.updateMembership(ctx, email, bson.M{"$pull": bson.M{"owned_properties": propertyID}})
}

// updateMembership applies a single $addToSet/$pull to the active user.
// A write that matches but modifies nothing (id already present/absent)
// reports ErrNoChange so callers can distinguish true no-ops.
func (r *UserRepository) updateMembership(ctx context.Context, email string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, activeEmailFilter(email), update)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	if res.ModifiedCount == 0 {
		return domain.ErrNoChange
	}
	return nil
}

// EnsureIndexes creates the users indexes. Email uniqueness holds only among
// active users, hence the partial filter: a removed account frees its email.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_active": true}),
		},
		{Keys: bson.D{{Key: "user_type", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func activeEmailFilter(email string) bson.M {
	return bson.M{"email": email, "is_active": true}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
