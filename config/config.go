// Package config exposes process configuration for the blog, read from
// environment variables (optionally loaded from a .env file at startup).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	name    = "goblog"
	version = "1.0.0"
)

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// LoadEnvFile loads BLOG_* variables from .env if one exists. A missing
// file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

func GetVersion() string {
	return version
}

func GetName() string {
	return name
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("BLOG_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("BLOG_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("BLOG_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("BLOG_PORT"))
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}

// GetDomain returns the public domain used in password-reset emails and,
// when set, enforced on inbound requests.
func GetDomain() string {
	return os.Getenv("BLOG_DOMAIN")
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("BLOG_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/goblog"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("BLOG_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetUploadFolder returns the directory post attachments are stored in.
func GetUploadFolder() string {
	uploadFolderPath := os.Getenv("BLOG_UPLOAD_FOLDER")
	if uploadFolderPath == "" {
		uploadFolderPath = "uploads"
	}
	return uploadFolderPath
}

// GetSecretKey returns the secret used for session cookies and password
// reset tokens. Empty means the caller should generate one per process.
func GetSecretKey() string {
	return strings.TrimSpace(os.Getenv("BLOG_SECRET_KEY"))
}

// GetResetTokenMaxAge returns the password-reset token lifetime in hours.
func GetResetTokenMaxAge() int {
	hours, err := strconv.Atoi(os.Getenv("BLOG_RESET_TOKEN_HOURS"))
	if err != nil || hours <= 0 {
		return 72
	}
	return hours
}

func GetSMTPHost() string {
	host := os.Getenv("BLOG_SMTP_HOST")
	if host == "" {
		host = "localhost"
	}
	return host
}

func GetSMTPPort() int {
	port, err := strconv.Atoi(os.Getenv("BLOG_SMTP_PORT"))
	if err != nil || port <= 0 {
		return 587
	}
	return port
}

func GetSMTPUsername() string {
	return os.Getenv("BLOG_SMTP_USERNAME")
}

func GetSMTPPassword() string {
	return os.Getenv("BLOG_SMTP_PASSWORD")
}
