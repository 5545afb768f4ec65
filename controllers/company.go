package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/service"
	"github.com/coolairsites/pipeline-api/utils"
)

// companyCache caches company reads for the dashboard. Entries are
// invalidated on update; stale reads are bounded by the TTL set in main.
var companyCache *service.TTLCache

// InitCompanyCache installs the cache. Called once from main.
func InitCompanyCache(ttl time.Duration) {
	companyCache = service.NewTTLCache(ttl)
}

// CreateCompany creates a company record.
func CreateCompany(c *gin.Context) {
	var req models.CompanyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.CompaniesCollection)

	now := time.Now()
	company := models.Company{
		Name:       req.Name,
		Slug:       req.Slug,
		OwnerName:  req.OwnerName,
		OwnerEmail: req.OwnerEmail,
		Phone:      req.Phone,
		City:       req.City,
		State:      req.State,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result, err := collection.InsertOne(ctx, company)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.CreateConflictError("a company with this slug already exists"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	company.ID = result.InsertedID.(primitive.ObjectID)

	utils.LogInfo(map[string]interface{}{
		"companyId": company.ID.Hex(),
		"slug":      company.Slug,
	}, "company created")

	c.JSON(http.StatusCreated, company)
}

// GetCompany returns one company, served from the TTL cache when fresh.
func GetCompany(c *gin.Context) {
	id := c.Param("id")

	if cached, ok := companyCache.Get(id); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("company"))
		return
	}

	ctx := repository.GetContext()
	var company models.Company
	err = repository.Collection(repository.CompaniesCollection).
		FindOne(ctx, bson.M{"_id": objID}).
		Decode(&company)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("company"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	companyCache.Set(id, company)
	c.JSON(http.StatusOK, company)
}

// UpdateCompany updates mutable fields and invalidates the cache entry.
func UpdateCompany(c *gin.Context) {
	id := c.Param("id")

	var req models.CompanyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("company"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.OwnerName != "" {
		update["ownerName"] = req.OwnerName
	}
	if req.OwnerEmail != "" {
		update["ownerEmail"] = req.OwnerEmail
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.City != "" {
		update["city"] = req.City
	}
	if req.State != "" {
		update["state"] = req.State
	}

	ctx := repository.GetContext()
	result, err := repository.Collection(repository.CompaniesCollection).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("company"))
		return
	}

	companyCache.Invalidate(id)

	var company models.Company
	if err := repository.Collection(repository.CompaniesCollection).
		FindOne(ctx, bson.M{"_id": objID}).
		Decode(&company); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{"companyId": id}, "company updated")
	c.JSON(http.StatusOK, company)
}

// ListCompanies returns a page of companies.
func ListCompanies(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx := repository.GetContext()
	collection := repository.Collection(repository.CompaniesCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	companies := []models.Company{}
	if err := cursor.All(ctx, &companies); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, companies, total, page, limit)
}
