package database

import (
	"fmt"
	"log"
	"sync"

	"socialChat/configs"
	"socialChat/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

func GetDB(config *configs.Config) *gorm.DB {
	once.Do(func() {
		initialize(config)
	})
	return db
}

func initialize(config *configs.Config) {
	psql := getPSQL(config)
	dsn := fmt.Sprintf(
		"host=%v user=%v password=%v dbname=%v port=%v sslmode=%v TimeZone=%v",
		psql.Host, psql.User, psql.Password, psql.Name, psql.Port, psql.SSL, psql.Timezone,
	)
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	migrate()
	seedAssistantUser(uint(config.Viper.GetUint64("assistant.user_id")))
}

func getPSQL(config *configs.Config) *models.PSQL {
	return &models.PSQL{
		Host:     config.Viper.GetString("database.host"),
		Port:     config.Viper.GetInt("database.port"),
		User:     config.Viper.GetString("database.user"),
		Password: config.Viper.GetString("database.password"),
		Name:     config.Viper.GetString("database.name"),
		SSL:      config.Viper.GetString("database.ssl"),
		Timezone: config.Viper.GetString("database.timezone"),
	}
}

func migrate() {
	err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migrated successfully")
}

// seedAssistantUser guarantees the reserved assistant identity exists so
// messages can reference it. Idempotent across restarts.
func seedAssistantUser(assistantId uint) {
	if assistantId == 0 {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("id = ?", assistantId).Count(&count)
	if count > 0 {
		return
	}
	assistant := models.User{
		Model:     gorm.Model{ID: assistantId},
		FirstName: "Assistant",
		LastName:  "Bot",
		Email:     "assistant@socialchat.local",
	}
	if err := db.Create(&assistant).Error; err != nil {
		log.Fatalf("Failed to seed assistant user: %v", err)
	}
}
