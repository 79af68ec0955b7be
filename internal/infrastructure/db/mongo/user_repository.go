package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository (and so ports.UserDirectory)
// on MongoDB. The username is the document _id.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoRole struct {
	RoleName    string `bson:"role_name"`
	Description string `bson:"description,omitempty"`
}

type mongoUser struct {
	UserName      string      `bson:"_id"`
	Password      string      `bson:"password"`
	Email         string      `bson:"email,omitempty"`
	EmailLower    string      `bson:"email_lower,omitempty"`
	ContactNumber int64       `bson:"contact_number,omitempty"`
	Address       string      `bson:"address,omitempty"`
	Enabled       bool        `bson:"enabled"`
	Roles         []mongoRole `bson:"roles"`
	CreatedAt     int64       `bson:"created_at"`
}

// Create inserts a user document.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByKey finds a user by username.
func (r *UserRepository) GetByKey(ctx context.Context, userName string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": userName})
}

// GetByEmailCI finds a user by email, ignoring case.
func (r *UserRepository) GetByEmailCI(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"email_lower": strings.ToLower(email)})
}

// GetByContactNumber finds a user by contact number.
func (r *UserRepository) GetByContactNumber(ctx context.Context, number int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"contact_number": number})
}

// List returns all users ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

// EnsureIndexes creates the alternate-key indexes used by login resolution.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email_lower", Value: 1}}},
		{Keys: bson.D{{Key: "contact_number", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// findOne reports a miss as (nil, nil).
func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func toMongoUser(u *domain.User) mongoUser {
	roles := make([]mongoRole, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, mongoRole{RoleName: role.RoleName, Description: role.Description})
	}
	return mongoUser{
		UserName:      u.UserName,
		Password:      u.Password,
		Email:         u.Email,
		EmailLower:    strings.ToLower(u.Email),
		ContactNumber: u.ContactNumber,
		Address:       u.Address,
		Enabled:       u.Enabled,
		Roles:         roles,
		CreatedAt:     u.CreatedAt.Unix(),
	}
}

func (mu *mongoUser) toDomain() *domain.User {
	roles := make([]domain.Role, 0, len(mu.Roles))
	for _, role := range mu.Roles {
		roles = append(roles, domain.Role{RoleName: role.RoleName, Description: role.Description})
	}
	return &domain.User{
		UserName:      mu.UserName,
		Password:      mu.Password,
		Email:         mu.Email,
		ContactNumber: mu.ContactNumber,
		Address:       mu.Address,
		Enabled:       mu.Enabled,
		Roles:         roles,
		CreatedAt:     unixToTime(mu.CreatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
