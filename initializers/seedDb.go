package initializers

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/popaya/grocery-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedPermissions = []models.Permission{
	{Name: "create-role", Resource: "role", Action: "create"},
	{Name: "read-role", Resource: "role", Action: "read"},
	{Name: "update-role", Resource: "role", Action: "update"},
	{Name: "delete-role", Resource: "role", Action: "delete"},

	{Name: "create-permission", Resource: "permission", Action: "create"},
	{Name: "read-permission", Resource: "permission", Action: "read"},
	{Name: "update-permission", Resource: "permission", Action: "update"},
	{Name: "delete-permission", Resource: "permission", Action: "delete"},

	{Name: "create-user-role", Resource: "user-role", Action: "create"},
	{Name: "read-user-role", Resource: "user-role", Action: "read"},
	{Name: "delete-user-role", Resource: "user-role", Action: "delete"},

	{Name: "create-role-permission", Resource: "role-permission", Action: "create"},
	{Name: "read-role-permission", Resource: "role-permission", Action: "read"},
	{Name: "delete-role-permission", Resource: "role-permission", Action: "delete"},

	{Name: "create-product", Resource: "product", Action: "create"},
	{Name: "read-product", Resource: "product", Action: "read"},
	{Name: "update-product", Resource: "product", Action: "update"},
	{Name: "delete-product", Resource: "product", Action: "delete"},

	{Name: "create-order", Resource: "order", Action: "create"},
	{Name: "read-order", Resource: "order", Action: "read"},
	{Name: "update-order", Resource: "order", Action: "update"},
	{Name: "delete-order", Resource: "order", Action: "delete"},

	{Name: "create-category", Resource: "category", Action: "create"},
	{Name: "read-category", Resource: "category", Action: "read"},
	{Name: "update-category", Resource: "category", Action: "update"},
	{Name: "delete-category", Resource: "category", Action: "delete"},

	{Name: "read-user", Resource: "user", Action: "read"},
}

var seedCategories = []models.Category{
	{Name: "Fruits & Vegetables", Description: "Fresh fruits and vegetables"},
	{Name: "Dairy & Eggs", Description: "Milk, cheese, eggs and more"},
	{Name: "Meat & Seafood", Description: "Fresh meat and seafood"},
	{Name: "Bakery", Description: "Bread, cakes and pastries"},
	{Name: "Beverages", Description: "Drinks and juices"},
}

// SeedDatabase creates the base roles, the permission matrix, starter
// categories and an admin account. Safe to re-run: existing rows are kept.
func SeedDatabase(db *gorm.DB) error {
	adminRole := models.Role{Name: "admin", Description: "Administrator with full access"}
	if err := firstOrCreateRole(db, &adminRole); err != nil {
		return err
	}
	customerRole := models.Role{Name: "customer", Description: "Regular customer"}
	if err := firstOrCreateRole(db, &customerRole); err != nil {
		return err
	}

	for i := range seedPermissions {
		perm := seedPermissions[i]
		perm.Description = fmt.Sprintf("Permission to %s %s", perm.Action, perm.Resource)
		if err := db.Where("name = ?", perm.Name).FirstOrCreate(&perm).Error; err != nil {
			return fmt.Errorf("seed permission %s: %w", perm.Name, err)
		}
	}

	var allPerms []models.Permission
	if err := db.Find(&allPerms).Error; err != nil {
		return err
	}
	if err := db.Model(&adminRole).Association("Permissions").Replace(allPerms); err != nil {
		return err
	}

	var customerPerms []models.Permission
	for _, p := range allPerms {
		if p.Resource == "product" && p.Action == "read" {
			customerPerms = append(customerPerms, p)
		}
		if p.Resource == "order" && (p.Action == "create" || p.Action == "read") {
			customerPerms = append(customerPerms, p)
		}
	}
	if err := db.Model(&customerRole).Association("Permissions").Replace(customerPerms); err != nil {
		return err
	}

	for i := range seedCategories {
		cat := seedCategories[i]
		if err := db.Where("name = ?", cat.Name).FirstOrCreate(&cat).Error; err != nil {
			return fmt.Errorf("seed category %s: %w", cat.Name, err)
		}
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin account seed.")
		return nil
	}

	var admin models.User
	err := db.Where("email = ?", adminEmail).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}
		admin = models.User{
			FirstName: "Store",
			LastName:  "Admin",
			Email:     adminEmail,
			Password:  string(hash),
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
	} else if err != nil {
		return err
	}

	if err := db.Model(&admin).Association("Roles").Append(&adminRole); err != nil {
		return err
	}

	log.Println("Database seeded successfully.")
	return nil
}

func firstOrCreateRole(db *gorm.DB, role *models.Role) error {
	if err := db.Where("name = ?", role.Name).FirstOrCreate(role).Error; err != nil {
		return fmt.Errorf("seed role %s: %w", role.Name, err)
	}
	return nil
}
