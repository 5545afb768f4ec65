package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coolairsites/pipeline-api/models"
	"github.com/coolairsites/pipeline-api/repository"
	"github.com/coolairsites/pipeline-api/utils"
)

// Login authenticates an internal user and returns a signed token.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := repository.GetContext()
	usersCollection := repository.Collection(repository.UsersCollection)

	var user models.User
	err := usersCollection.FindOne(ctx, bson.M{"username": req.Username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateUnauthorizedError())
			return
		}
		utils.HandleError(c, err)
		return
	}

	if user.Status != models.UserStatusACTIVE {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	}, "user logged in")

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

// ValidateToken returns the caller's identity from a valid token.
func ValidateToken(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	utils.SuccessResponse(c, user, "")
}
