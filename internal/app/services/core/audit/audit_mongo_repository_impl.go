package audit

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type auditMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

type auditDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    int64              `bson:"userId"`
	Action    string             `bson:"action"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d auditDocument) toModel() models.AuditEntry {
	return models.AuditEntry{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Action:    d.Action,
		CreatedAt: d.CreatedAt,
	}
}

func NewAuditMongoRepository(db *mongo.Database, logger *zap.Logger) contracts.AuditRepository {
	return &auditMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAuditEntries),
		Log:        logger,
	}
}

func (repo *auditMongoRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	document := auditDocument{
		UserID:    entry.UserID,
		Action:    entry.Action,
		CreatedAt: time.Now().UTC(),
	}
	result, err := repo.Collection.InsertOne(ctx, document)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = objectID.Hex()
	}
	entry.CreatedAt = document.CreatedAt
	return nil
}

func (repo *auditMongoRepository) FindAll(ctx context.Context, filter *models.AuditFilter) ([]models.AuditEntry, error) {
	query := bson.M{}
	if filter.Action != "" {
		query["action"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Action), Options: "i"}
	}
	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}
	if filter.From != nil || filter.To != nil {
		createdAt := bson.M{}
		if filter.From != nil {
			createdAt["$gte"] = *filter.From
		}
		if filter.To != nil {
			createdAt["$lte"] = *filter.To
		}
		query["createdAt"] = createdAt
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := repo.Collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var documents []auditDocument
	err = cursor.All(ctx, &documents)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	entries := make([]models.AuditEntry, 0, len(documents))
	for _, document := range documents {
		entries = append(entries, document.toModel())
	}
	return entries, nil
}
