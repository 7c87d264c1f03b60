package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ms-events/internal/models"
)

// DB is the MongoDB gateway for the events collection. It does no
// validation and no retries; store errors propagate to the caller.
type DB struct {
	Events *mongo.Collection
}

// eventRecord mirrors a stored document on the read side. Date decodes
// into an any so callers can coerce legacy representations themselves.
type eventRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Date          any                `bson:"date"`
	Status        string             `bson:"status"`
	Location      string             `bson:"location"`
	AttendeeCount int                `bson:"attendeeCount"`
	Code          string             `bson:"code"`
	QRData        string             `bson:"qrData"`
	HostID        string             `bson:"hostId"`
	CompanyName   string             `bson:"companyName"`
	Category      string             `bson:"category"`
	Description   string             `bson:"description"`
	IsOnline      bool               `bson:"isOnline"`
	Capacity      int                `bson:"capacity"`
	Price         float64            `bson:"price"`
	IsPopular     bool               `bson:"isPopular"`
	Speakers      []models.Speaker   `bson:"speakers"`
}

// ListEvents returns events newest-first. A non-empty hostID restricts
// the result to that host via a server-side equality filter, which needs
// the hostId+date compound index on the collection.
func (d *DB) ListEvents(ctx context.Context, hostID string) ([]models.StoredEvent, error) {
	filter := bson.M{}
	if hostID != "" {
		filter["hostId"] = hostID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := d.Events.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.StoredEvent
	for cursor.Next(ctx) {
		var rec eventRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		events = append(events, models.StoredEvent{
			ID:            rec.ID.Hex(),
			Name:          rec.Name,
			Date:          rec.Date,
			Status:        rec.Status,
			Location:      rec.Location,
			AttendeeCount: rec.AttendeeCount,
			Code:          rec.Code,
			QRData:        rec.QRData,
			HostID:        rec.HostID,
			CompanyName:   rec.CompanyName,
			Category:      rec.Category,
			Description:   rec.Description,
			IsOnline:      rec.IsOnline,
			Capacity:      rec.Capacity,
			Price:         rec.Price,
			IsPopular:     rec.IsPopular,
			Speakers:      rec.Speakers,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// InsertEvent writes one new document and returns the assigned id.
func (d *DB) InsertEvent(ctx context.Context, doc models.EventDocument) (string, error) {
	res, err := d.Events.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}
