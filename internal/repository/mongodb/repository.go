// Package mongodb archives snapshots pushed by peer devices. It is an audit
// trail for the central node, never the source of truth: the file store stays
// authoritative.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

// ReceivedSnapshot is one archived push from a peer node.
type ReceivedSnapshot struct {
	NodeAddr   string                `bson:"node_addr" json:"node_addr"`
	ReceivedAt time.Time             `bson:"received_at" json:"received_at"`
	Document   models.DatabaseSchema `bson:"document" json:"document"`
}

// Archive defines the interface for snapshot archival.
type Archive interface {
	ArchiveSnapshot(ctx context.Context, snapshot ReceivedSnapshot) error
}

// MongoDBArchive implements Archive on a MongoDB collection.
type MongoDBArchive struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBArchive connects to MongoDB and verifies the connection.
func NewMongoDBArchive(ctx context.Context, uri string, dbName string) (*MongoDBArchive, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBArchive{
		client:   client,
		dbName:   dbName,
		collName: "received_snapshots",
	}, nil
}

// ArchiveSnapshot stores one received snapshot document.
func (a *MongoDBArchive) ArchiveSnapshot(ctx context.Context, snapshot ReceivedSnapshot) error {
	collection := a.client.Database(a.dbName).Collection(a.collName)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert received snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (a *MongoDBArchive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
