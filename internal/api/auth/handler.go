package auth

import (
	"net/http"
	"regexp"
	"time"

	"courseware-app/config"
	"courseware-app/database"
	"courseware-app/internal/domain/accounts"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func isEmailValid(email string) bool {
	pattern := `^[a-zA-Z0-9._%%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]string{}
	if !isEmailValid(input.Email) {
		fields["email"] = "Invalid email format"
	}
	if !isPasswordStrong(input.Password) {
		fields["password"] = "Password must be at least 8 characters long and contain both letters and numbers"
	}

	// Uniqueness surfaces as a field error, same shape as the form checks.
	var count int64
	database.DB.Model(&accounts.Account{}).Where("email = ?", input.Email).Count(&count)
	if count > 0 {
		fields["email"] = "Email '" + input.Email + "' is already in use"
	}
	database.DB.Model(&accounts.Account{}).Where("username = ?", input.Username).Count(&count)
	if count > 0 {
		fields["username"] = "Username '" + input.Username + "' is already in use"
	}

	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	account := accounts.Account{
		Email:        input.Email,
		Username:     input.Username,
		Password:     &hashed,
		AuthProvider: "local",
		GoogleSub:    nil,
	}

	if err := database.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email or username may already exist", "details": err.Error()})
		return
	}

	tokenString, err := issueAppJWT(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": tokenString, "account": account})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// One generic message for every failure mode; never reveal which
	// field was wrong.
	var account accounts.Account
	err := database.DB.Where("email = ?", input.Email).First(&account).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if account.Password == nil || *account.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	err = bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte(input.Password))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := issueAppJWT(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// Logout is a stateless acknowledgement; the token simply expires
// client-side.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func ChangePassword(c *gin.Context) {
	accountID := c.GetUint("account_id")
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters with letters and numbers"})
		return
	}

	var account accounts.Account
	if err := database.DB.First(&account, accountID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
		return
	}

	if account.Password == nil || *account.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "This account does not have a password. Sign in with Google or set a password first.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(*account.Password),
		[]byte(body.OldPassword),
	); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashedNew, _ := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	database.DB.Model(&account).Update("password", string(hashedNew))

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func issueAppJWT(account accounts.Account) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": account.ID,
		"email":      account.Email,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}
