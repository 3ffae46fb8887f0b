package service

import (
	"os"
	"testing"

	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/logger"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}
