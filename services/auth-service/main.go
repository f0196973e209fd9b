package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"gorm.io/gorm"

	"github.com/prem-2323/CleanCity/pkg/database"
	"github.com/prem-2323/CleanCity/pkg/middleware"
	"github.com/prem-2323/CleanCity/pkg/response"
	"github.com/prem-2323/CleanCity/services/auth-service/models"
	"github.com/prem-2323/CleanCity/services/auth-service/utils"
)

var db *gorm.DB

func isValidPassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	if len(password) > 100 {
		return false, "Password too long"
	}
	return true, ""
}

func main() {
	middleware.RegisterMetrics()

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
		os.Getenv("POSTGRES_PORT"),
	)
	if os.Getenv("POSTGRES_HOST") == "" {
		dsn = "host=localhost user=admin password=password dbname=auth_db port=5434 sslmode=disable TimeZone=UTC"
	}

	var err error
	db, err = database.ConnectPostgres(dsn)
	if err != nil {
		log.Fatalf("[ERROR] Failed to connect to database: %v", err)
	}

	log.Println("[INFO] Running auto migration")
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("[ERROR] Migration failed: %v", err)
	}
	log.Println("[OK] Migration complete")

	http.HandleFunc("/api/auth/register", middleware.LoggerMiddleware(http.HandlerFunc(registerHandler)).ServeHTTP)
	http.HandleFunc("/api/auth/login", middleware.LoggerMiddleware(http.HandlerFunc(loginHandler)).ServeHTTP)
	http.HandleFunc("/api/auth/me", middleware.LoggerMiddleware(middleware.AuthMiddleware(meHandler)).ServeHTTP)
	http.HandleFunc("/api/users", middleware.LoggerMiddleware(middleware.AuthMiddleware(middleware.RequireRole("admin")(usersHandler))).ServeHTTP)

	// Called service-to-service by the report service after a task resolves.
	http.HandleFunc("/internal/credits", middleware.LoggerMiddleware(http.HandlerFunc(creditsHandler)).ServeHTTP)

	http.HandleFunc("/health", healthHandler)
	http.Handle("/metrics", middleware.GetMetricsHandler())

	port := ":8081"
	log.Printf("[INFO] Auth Service running on port %s", port)
	if err := http.ListenAndServe(port, nil); err != nil {
		log.Fatalf("[ERROR] Server failed: %v", err)
	}
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Zone     string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if input.Username == "" || input.Password == "" || input.Name == "" {
		response.Error(w, http.StatusBadRequest, "Username, Password, and Name are required", "")
		return
	}
	if ok, msg := isValidPassword(input.Password); !ok {
		response.Error(w, http.StatusBadRequest, msg, "")
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleCitizen
	}
	if !models.ValidRole(role) {
		response.Error(w, http.StatusBadRequest, "Invalid role", input.Role)
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	user := models.User{
		Username: input.Username,
		Password: hashed,
		Name:     input.Name,
		Role:     role,
		Zone:     input.Zone,
		Credits:  models.StartingCredits,
	}
	if err := db.Create(&user).Error; err != nil {
		response.Error(w, http.StatusConflict, "Username already taken", err.Error())
		return
	}

	log.Printf("[OK] User registered - Username: %s, Role: %s", user.Username, user.Role)
	response.Success(w, http.StatusCreated, "User registered successfully", user)
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	var user models.User
	if err := db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid username or password", "")
		return
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		response.Error(w, http.StatusUnauthorized, "Invalid username or password", "")
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Username, user.Name, user.Role, user.Zone)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Login successful", map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func meHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		response.Error(w, http.StatusNotFound, "User not found", "")
		return
	}
	response.Success(w, http.StatusOK, "User fetched successfully", user)
}

func usersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var users []models.User
	query := db.Order("created_at desc")
	if role := r.URL.Query().Get("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to fetch users", err.Error())
		return
	}
	response.Success(w, http.StatusOK, "Users fetched successfully", users)
}

func creditsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	var input struct {
		UserID string `json:"userId"`
		Amount int    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if input.UserID == "" || input.Amount <= 0 {
		response.Error(w, http.StatusBadRequest, "UserID and a positive Amount are required", "")
		return
	}

	result := db.Model(&models.User{}).
		Where("id = ?", input.UserID).
		UpdateColumn("credits", gorm.Expr("credits + ?", input.Amount))
	if result.Error != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to award credits", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.Error(w, http.StatusNotFound, "User not found", input.UserID)
		return
	}

	log.Printf("[OK] Awarded %d credits to user %s", input.Amount, input.UserID)
	response.Success(w, http.StatusOK, "Credits awarded", nil)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Auth service healthy", nil)
}
