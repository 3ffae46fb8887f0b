package logger

import (
	"os"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("BLOG_LOG_FOLDER", os.TempDir())
	InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

func TestGetLogsReturnsNewestFirstCapped(t *testing.T) {
	logBuffer = nil

	Debug("first")
	Info("second")
	Warning("third")
	Error("fourth")

	logs := GetLogs(3, "DEBUG")
	assert.Len(t, logs, 3)
	assert.Contains(t, logs[0], "fourth")
	assert.Contains(t, logs[2], "second")
}

func TestGetLogsFiltersByLevel(t *testing.T) {
	logBuffer = nil

	Debug("noise")
	Error("broken")

	logs := GetLogs(10, "ERROR")
	assert.Len(t, logs, 1)
	assert.Contains(t, logs[0], "broken")
}
