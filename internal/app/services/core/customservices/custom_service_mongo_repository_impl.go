package customservices

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

type CustomServiceMongoRepository struct {
	Collection *mongo.Collection
}

func NewCustomServiceMongoRepository(db *mongo.Database) contracts.CustomServiceRepository {
	return &CustomServiceMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionCustomServices),
	}
}

func (repo *CustomServiceMongoRepository) FindByID(ctx context.Context, serviceID string) (*models.CustomService, error) {
	var service models.CustomService
	err := repo.Collection.FindOne(ctx, bson.M{"_id": serviceID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &service, nil
}

func (repo *CustomServiceMongoRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.CustomService, int64, error) {
	total, err := repo.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := repo.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	services := make([]models.CustomService, 0)
	if err := cursor.All(ctx, &services); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return services, total, nil
}

func (repo *CustomServiceMongoRepository) Create(ctx context.Context, service *models.CustomService) error {
	_, err := repo.Collection.InsertOne(ctx, service)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrCustomServiceAlreadyExists(err, service.ID)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *CustomServiceMongoRepository) Update(ctx context.Context, service *models.CustomService) error {
	update := bson.M{"$set": bson.M{
		"title":         service.Title,
		"description":   service.Description,
		"formFields":    service.FormFields,
		"baseAmount":    service.BaseAmount,
		"processingFee": service.ProcessingFee,
		"enabled":       service.Enabled,
		"updatedAt":     service.UpdatedAt,
	}}
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": service.ID}, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *CustomServiceMongoRepository) SetEnabled(ctx context.Context, serviceID string, enabled bool) (bool, error) {
	update := bson.M{"$set": bson.M{"enabled": enabled, "updatedAt": time.Now()}}

	result, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": serviceID}, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (repo *CustomServiceMongoRepository) Delete(ctx context.Context, serviceID string) (bool, error) {
	result, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": serviceID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}
