package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"shuno-backend/models"
)

// seedFile is the optional YAML seed layout, with ${VAR} expansion applied
// before parsing.
type seedFile struct {
	Admin struct {
		Email     string `yaml:"email"`
		Password  string `yaml:"password"`
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
	} `yaml:"admin"`
	Properties []struct {
		Name        string   `yaml:"name"`
		Location    string   `yaml:"location"`
		Description string   `yaml:"description"`
		Price       float64  `yaml:"price"`
		MaxGuests   int      `yaml:"max_guests"`
		Bedrooms    int      `yaml:"bedrooms"`
		Bathrooms   int      `yaml:"bathrooms"`
		Amenities   []string `yaml:"amenities"`
	} `yaml:"properties"`
}

// SeedDatabase ensures the settings row and a default admin exist, and
// loads the optional SEED_FILE. Every step is idempotent.
func SeedDatabase() error {
	// ---------------- Settings singleton ----------------
	var settingsCount int64
	DB.Model(&models.SiteSettings{}).Count(&settingsCount)
	if settingsCount == 0 {
		settings := models.SiteSettings{SiteName: envOrDefault("SITE_NAME", "Shu-no")}
		if err := DB.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
		log.Println("Settings seeded")
	}

	seed := loadSeedFile()

	// ---------------- Default admin ----------------
	adminEmail := envOrDefault("ADMIN_EMAIL", "admin@shuno.local")
	adminPassword := envOrDefault("ADMIN_PASSWORD", "admin123")
	adminFirst := "Admin"
	adminLast := "User"
	if seed != nil && seed.Admin.Email != "" {
		adminEmail = seed.Admin.Email
		if seed.Admin.Password != "" {
			adminPassword = seed.Admin.Password
		}
		if seed.Admin.FirstName != "" {
			adminFirst = seed.Admin.FirstName
		}
		if seed.Admin.LastName != "" {
			adminLast = seed.Admin.LastName
		}
	}

	var adminCount int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Email:     strings.ToLower(adminEmail),
				Password:  string(hash),
				FirstName: adminFirst,
				LastName:  adminLast,
				Role:      models.RoleAdmin,
				IsActive:  true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Properties from seed file ----------------
	if seed != nil && len(seed.Properties) > 0 {
		var productCount int64
		DB.Model(&models.Property{}).Count(&productCount)
		if productCount == 0 {
			for _, p := range seed.Properties {
				amenities, err := yamlListToJSON(p.Amenities)
				if err != nil {
					log.Printf("warning: bad amenities for %s: %v", p.Name, err)
				}
				product := models.Property{
					Name:        p.Name,
					Location:    p.Location,
					Description: p.Description,
					Price:       p.Price,
					MaxGuests:   p.MaxGuests,
					Bedrooms:    p.Bedrooms,
					Bathrooms:   p.Bathrooms,
					Amenities:   amenities,
					IsActive:    true,
				}
				if err := DB.Create(&product).Error; err != nil {
					log.Printf("warning: failed to seed property %s: %v", p.Name, err)
				}
			}
			log.Printf("Seeded %d properties", len(seed.Properties))
		}
	}

	return nil
}

func loadSeedFile() *seedFile {
	path := strings.TrimSpace(os.Getenv("SEED_FILE"))
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: cannot read seed file %s: %v", path, err)
		return nil
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	var seed seedFile
	if err := yaml.Unmarshal(expanded, &seed); err != nil {
		log.Printf("warning: cannot parse seed file %s: %v", path, err)
		return nil
	}
	return &seed
}

func yamlListToJSON(values []string) (datatypes.JSON, error) {
	if len(values) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
