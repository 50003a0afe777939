package main

import (
	"log"
	"os"

	"docvault-rag-be/internal/model"
	"docvault-rag-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Default accounts for local development, one per role tier.
var defaultUsers = []struct {
	Email      string
	FullName   string
	Password   string
	Role       string
	Department string
}{
	{"admin@docvault.local", "Admin Executive", "admin123", "Executive", "management"},
	{"manager@docvault.local", "Engineering Manager", "manager123", "Manager", "engineering"},
	{"employee@docvault.local", "Engineering Employee", "employee123", "Employee", "engineering"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding default users...")

	for _, u := range defaultUsers {
		if err := seedUser(db, u.Email, u.FullName, u.Password, u.Role, u.Department); err != nil {
			color.Red("  ✗ %s: %v", u.Email, err)
			continue
		}
		color.Green("  ✓ %s (%s, %s)", u.Email, u.Role, u.Department)
	}

	color.Cyan("Done.")
}

func seedUser(db *gorm.DB, email, fullName, password, role, department string) error {
	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)

	user := &model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     fullName,
		Role:         role,
		Department:   department,
		Status:       "active",
	}
	return db.Create(user).Error
}
