package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

const collectionPatients = "patients"

type PatientRepository struct {
	col *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{col: db.Collection(collectionPatients)}
}

// Create inserts a new patient document.
func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// FindByID retrieves a patient by id.
func (r *PatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Patient
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all patients, most recent appointment first.
func (r *PatientRepository) List(ctx context.Context) ([]*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appointment_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	patients := make([]*domain.Patient, 0)
	if err := cur.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// UpdateStatus sets the status of a booking.
func (r *PatientRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Patient, error) {
	return r.set(ctx, id, bson.M{"status": status})
}

// UpdateDescription sets the description notes of a booking.
func (r *PatientRepository) UpdateDescription(ctx context.Context, id, details string) (*domain.Patient, error) {
	return r.set(ctx, id, bson.M{"description_details": details})
}

func (r *PatientRepository) set(ctx context.Context, id string, fields bson.M) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Patient
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("update patient %s: %w", id, err)
	}
	return &p, nil
}

// PaymentTotals sums paid amounts over all bookings in a single $group stage.
func (r *PatientRepository) PaymentTotals(ctx context.Context) (ports.PaymentTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$paid_amount"}}},
			{Key: "cancelled", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$status", domain.PatientStatusCancelled}}},
				"$paid_amount",
				0,
			}}}}}},
			{Key: "paid_count", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$gt", Value: bson.A{"$paid_amount", 0}}},
				1,
				0,
			}}}}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.PaymentTotals{}, fmt.Errorf("aggregate payments: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total     int64 `bson:"total"`
		Cancelled int64 `bson:"cancelled"`
		PaidCount int64 `bson:"paid_count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return ports.PaymentTotals{}, fmt.Errorf("decode payments: %w", err)
	}
	if len(rows) == 0 {
		return ports.PaymentTotals{}, nil
	}

	return ports.PaymentTotals{
		TotalPaid:     rows[0].Total,
		CancelledPaid: rows[0].Cancelled,
		PaidCount:     rows[0].PaidCount,
	}, nil
}

// EnsureIndexes creates necessary indexes on the patients collection.
func (r *PatientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "appointment_at", Value: -1}}},
		{Keys: bson.D{{Key: "booked_by", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
