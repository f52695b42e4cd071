package transactions

import (
	"context"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionMongoRepository struct {
	Collection *mongo.Collection
}

func NewTransactionMongoRepository(db *mongo.Database) contracts.TransactionRepository {
	return &TransactionMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionTransactions),
	}
}

func (repo *TransactionMongoRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	_, err := repo.Collection.InsertOne(ctx, transaction)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *TransactionMongoRepository) FindByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := repo.Collection.FindOne(ctx, bson.M{"_id": transactionID}).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &transaction, nil
}

func (repo *TransactionMongoRepository) FindAll(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ServiceID != "" {
		query["serviceId"] = filter.ServiceID
	}

	total, err := repo.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.PageSize)).
		SetLimit(int64(filter.PageSize))
	cursor, err := repo.Collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	transactions := make([]models.Transaction, 0)
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return transactions, total, nil
}

// FindOpenCreatedBefore returns the oldest open transactions first.
func (repo *TransactionMongoRepository) FindOpenCreatedBefore(ctx context.Context, before time.Time, limit int) ([]models.Transaction, error) {
	query := bson.M{
		"status": bson.M{"$in": []models.TransactionStatus{
			models.TransactionStatusPending,
			models.TransactionStatusAwaitingPayment,
		}},
		"createdAt": bson.M{"$lt": before},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := repo.Collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	transactions := make([]models.Transaction, 0)
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return transactions, nil
}

func (repo *TransactionMongoRepository) Update(ctx context.Context, transaction *models.Transaction) error {
	_, err := repo.Collection.ReplaceOne(ctx, bson.M{"_id": transaction.ID}, transaction)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
