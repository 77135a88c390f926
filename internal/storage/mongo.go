package storage

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reportbox/backend/internal/models"
)

const reportsCollection = "reports"

// opTimeout bounds every single store call.
const opTimeout = 8 * time.Second

// MongoStore holds the reports collection.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects, pings, and ensures the report indexes.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	start := time.Now()
	log.Printf("mongo: connecting uri=%s db=%s", redactURI(uri), dbName)

	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(dctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(dbName)}
	if err := s.createIndexes(ctx); err != nil {
		log.Printf("mongo: index creation warnings: %v", err)
	}

	log.Printf("mongo: connected ok in %s", time.Since(start).Round(time.Millisecond))
	return s, nil
}

// Disconnect tears down the client connection.
func (s *MongoStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) reports() *mongo.Collection {
	return s.db.Collection(reportsCollection)
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	ictx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []string
	col := s.reports()

	if _, err := col.Indexes().CreateOne(ictx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		errs = append(errs, "createdAt: "+err.Error())
	}
	if _, err := col.Indexes().CreateOne(ictx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	}); err != nil {
		errs = append(errs, "category: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// InsertReport appends one report document and fills in the assigned id.
func (s *MongoStore) InsertReport(ctx context.Context, r *models.Report) error {
	octx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.reports().InsertOne(octx, r)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	r.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// ListReports returns the whole collection, newest first.
func (s *MongoStore) ListReports(ctx context.Context) ([]models.Report, error) {
	octx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := s.reports().Find(octx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(octx)

	reports := []models.Report{}
	if err := cur.All(octx, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	return reports, nil
}

// GetReportByID fetches one report; ErrNotFound covers both a bad hex id and
// a missing document.
func (s *MongoStore) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	octx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var r models.Report
	err = s.reports().FindOne(octx, bson.M{"_id": oid}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return &r, nil
}

// UpdateReportStatus mutates only the status field and returns the updated
// document. Every other field stays untouched.
func (s *MongoStore) UpdateReportStatus(ctx context.Context, id, status string) (*models.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	octx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var r models.Report
	err = s.reports().FindOneAndUpdate(octx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update report %s: %w", id, err)
	}
	return &r, nil
}

func redactURI(raw string) string {
	if raw == "" || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}
