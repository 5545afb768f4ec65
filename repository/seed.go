package repository

import (
	"fmt"
	"time"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// defaultTagDefinitions is the seeded tag catalog. The catalog styles the
// dashboard; it does not gate tag writes.
var defaultTagDefinitions = []models.TagDefinition{
	{TagType: "answered-call", DisplayName: "Answered Call", Color: "#22c55e", IsAutoGenerated: true, Description: "Owner picked up a call"},
	{TagType: "voicemail-left", DisplayName: "Voicemail Left", Color: "#eab308", IsAutoGenerated: true, Description: "Call went to voicemail"},
	{TagType: "website-visit", DisplayName: "Viewed Website", Color: "#3b82f6", IsAutoGenerated: true, Description: "Prospect opened their demo site"},
	{TagType: "hot-lead", DisplayName: "Hot Lead", Color: "#ef4444", IsAutoGenerated: false, Description: "Agent flagged as high priority"},
	{TagType: "callback-requested", DisplayName: "Callback Requested", Color: "#a855f7", IsAutoGenerated: false, Description: "Owner asked to be called back"},
	{TagType: "wrong-number", DisplayName: "Wrong Number", Color: "#6b7280", IsAutoGenerated: false, Description: "Listed phone does not reach the owner"},
}

// SeedTagDefinitions inserts any catalog entries that are not present yet.
func SeedTagDefinitions() error {
	collection := Collection(TagDefinitionsCollection)

	for _, def := range defaultTagDefinitions {
		count, err := collection.CountDocuments(ctx, bson.M{"tagType": def.TagType})
		if err != nil {
			return fmt.Errorf("checking tag definition %q: %w", def.TagType, err)
		}
		if count > 0 {
			continue
		}

		def.CreatedAt = time.Now()
		if _, err := collection.InsertOne(ctx, def); err != nil {
			return fmt.Errorf("seeding tag definition %q: %w", def.TagType, err)
		}
		utils.Logger.Info().Str("tagType", def.TagType).Msg("tag definition seeded")
	}

	return nil
}

// InitializeAdminAccount creates the default admin when none exists.
func InitializeAdminAccount() error {
	usersCollection := Collection(UsersCollection)

	count, err := usersCollection.CountDocuments(ctx, bson.M{"role": models.UserRoleADMIN})
	if err != nil {
		return fmt.Errorf("checking admin account: %w", err)
	}

	if count > 0 {
		utils.Logger.Info().Msg("admin account exists, skipping creation")
		return nil
	}

	adminUser := models.User{
		Username:  "admin",
		Password:  utils.HashPassword("admin123"),
		Email:     "admin@localhost",
		Role:      models.UserRoleADMIN,
		Status:    models.UserStatusACTIVE,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := usersCollection.InsertOne(ctx, adminUser); err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	utils.Logger.Info().Msg("default admin account created")
	return nil
}
