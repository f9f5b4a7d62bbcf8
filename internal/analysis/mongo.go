package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig contains connection settings for the backend's MongoDB
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string // e.g. league_analyzer
	Collection string // e.g. analyses
}

// MongoSource reads analyses straight from the backend's database, one
// document per Riot ID
type MongoSource struct {
	client     *mongo.Client
	collection *mongo.Collection
	ctxTimeout time.Duration
}

// NewMongoSource connects and pings the database
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "league_analyzer"
	}
	if cfg.Collection == "" {
		cfg.Collection = "analyses"
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(cctx, options.Client().ApplyURI(cfg.URI).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoSource{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		ctxTimeout: 15 * time.Second,
	}, nil
}

// Close disconnects the client
func (m *MongoSource) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// List returns one summary per stored analysis
func (m *MongoSource) List(ctx context.Context) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	proj := options.Find().SetProjection(bson.M{
		"riot_id":               1,
		"match_count_requested": 1,
		"analysis.primary_role": 1,
		"created_at":            1,
		"_id":                   0,
	})
	cursor, err := m.collection.Find(ctx, bson.M{}, proj)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer cursor.Close(ctx)

	var list []Summary
	for cursor.Next(ctx) {
		var doc struct {
			RiotID     string    `bson:"riot_id"`
			MatchCount int       `bson:"match_count_requested"`
			CreatedAt  time.Time `bson:"created_at"`
			Analysis   struct {
				PrimaryRole string `bson:"primary_role"`
			} `bson:"analysis"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode analysis: %w", err)
		}
		if doc.RiotID == "" {
			continue
		}
		s := Summary{
			RiotID:      doc.RiotID,
			Filename:    Filename(doc.RiotID),
			PrimaryRole: doc.Analysis.PrimaryRole,
			MatchCount:  doc.MatchCount,
		}
		if !doc.CreatedAt.IsZero() {
			s.Created = float64(doc.CreatedAt.Unix())
		}
		list = append(list, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	sortByCreated(list)
	return list, nil
}

// Get looks the analysis up by exact Riot ID, then by normalized key
func (m *MongoSource) Get(ctx context.Context, id string) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	var doc Document
	err := m.collection.FindOne(ctx, bson.M{"riot_id": id}).Decode(&doc)
	if err == nil {
		return &doc, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	list, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	key := Key(id)
	for _, s := range list {
		if Key(s.RiotID) != key {
			continue
		}
		err := m.collection.FindOne(ctx, bson.M{"riot_id": s.RiotID}).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get analysis: %w", err)
		}
		return &doc, nil
	}
	return nil, ErrNotFound
}
