package customservices

import (
	"context"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FormConfigMongoRepository struct {
	Collection *mongo.Collection
}

func NewFormConfigMongoRepository(db *mongo.Database) contracts.FormConfigRepository {
	return &FormConfigMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionFormConfigs),
	}
}

func (repo *FormConfigMongoRepository) FindByServiceID(ctx context.Context, serviceID string) (*models.FormConfig, error) {
	var formConfig models.FormConfig
	err := repo.Collection.FindOne(ctx, bson.M{"_id": serviceID}).Decode(&formConfig)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &formConfig, nil
}

func (repo *FormConfigMongoRepository) Upsert(ctx context.Context, formConfig *models.FormConfig) error {
	_, err := repo.Collection.ReplaceOne(ctx,
		bson.M{"_id": formConfig.ServiceID},
		formConfig,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
