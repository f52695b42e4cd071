package settings

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

type SettingsMongoRepository struct {
	Collection *mongo.Collection
}

func NewSettingsMongoRepository(db *mongo.Database) contracts.SettingsRepository {
	return &SettingsMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionSettings),
	}
}

// FindGlobal returns (nil, nil) until the settings document is first saved.
func (repo *SettingsMongoRepository) FindGlobal(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := repo.Collection.FindOne(ctx, bson.M{"_id": constvars.MongoGlobalSettingsID}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &settings, nil
}

func (repo *SettingsMongoRepository) UpsertGlobal(ctx context.Context, settings *models.Settings) error {
	settings.ID = constvars.MongoGlobalSettingsID
	_, err := repo.Collection.ReplaceOne(ctx,
		bson.M{"_id": constvars.MongoGlobalSettingsID},
		settings,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
