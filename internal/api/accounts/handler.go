package accounts

import (
	"fmt"
	"net/http"

	"courseware-app/database"
	"courseware-app/internal/domain/accounts"

	"github.com/gin-gonic/gin"
)

func GetCurrentAccount(c *gin.Context) {
	accountID := c.GetUint("account_id")
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var account accounts.Account
	if err := database.DB.First(&account, accountID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateProfile overwrites email/username. Each must be unique across all
// accounts excluding the record being edited; a violation comes back as a
// field-specific error.
func UpdateProfile(c *gin.Context) {
	accountID := c.GetUint("account_id")
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var account accounts.Account
	if err := database.DB.First(&account, accountID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	fields := map[string]string{}

	var count int64
	database.DB.Model(&accounts.Account{}).
		Where("email = ? AND id <> ?", input.Email, account.ID).
		Count(&count)
	if count > 0 {
		fields["email"] = fmt.Sprintf("Email '%s' is already in use", input.Email)
	}

	database.DB.Model(&accounts.Account{}).
		Where("username = ? AND id <> ?", input.Username, account.ID).
		Count(&count)
	if count > 0 {
		fields["username"] = fmt.Sprintf("Username '%s' is already in use", input.Username)
	}

	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}

	account.Email = input.Email
	account.Username = input.Username
	if err := database.DB.Save(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}
