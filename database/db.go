package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/jvlcode/goblog/config"
	"github.com/jvlcode/goblog/database/model"
	"github.com/jvlcode/goblog/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

const (
	defaultUsername = "admin"
	defaultPassword = "admin"
	defaultEmail    = "admin@jvlcode.com"
)

var defaultCategories = []string{"General", "Technology", "Lifestyle"}

func initModels() error {
	models := []any{
		&model.User{},
		&model.Group{},
		&model.Permission{},
		&model.Category{},
		&model.Post{},
		&model.AboutUs{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initPermissions seeds the permission catalog. FirstOrCreate keeps the
// seeding idempotent across restarts.
func initPermissions() error {
	codenames := []string{
		model.PermViewPost,
		model.PermAddPost,
		model.PermChangePost,
		model.PermDeletePost,
		model.PermCanPublish,
	}
	for _, codename := range codenames {
		perm := &model.Permission{Codename: codename}
		if err := db.Where("codename = ?", codename).FirstOrCreate(perm).Error; err != nil {
			return err
		}
	}
	return nil
}

func initCategories() error {
	for _, name := range defaultCategories {
		category := &model.Category{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(category).Error; err != nil {
			return err
		}
	}
	return nil
}

func initUser() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if empty {
		hashedPassword, err := crypto.HashPassword(defaultPassword)
		if err != nil {
			return err
		}
		user := &model.User{
			Username: defaultUsername,
			Password: hashedPassword,
			Email:    defaultEmail,
			IsAdmin:  true,
		}
		return db.Create(user).Error
	}
	return nil
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	if err := initPermissions(); err != nil {
		return err
	}
	if err := initCategories(); err != nil {
		return err
	}
	if err := initUser(); err != nil {
		return err
	}

	return nil
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
