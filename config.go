package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	storageFile   = "file"
	storageBadger = "badger"
)

type Config struct {
	Addr         string
	DiagAddr     string
	TestMode     bool
	Storage      string
	DatabaseFile string
	BadgerDir    string
	LogLevel     string
	Routes       bool
}

// loadConfig reads an optional .env file, then the environment, then args.
// Later sources win.
func loadConfig(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var c Config

	fs := flag.NewFlagSet(ServiceName, flag.ContinueOnError)
	// nolint
	fs.BoolVar(&c.Routes, "routes", getEnvBool(ServiceName+"_routes", false), "Generate router documentation")
	fs.StringVar(&c.Addr, "addr", ":"+getEnv("PORT", "4000"), "application address")
	fs.StringVar(&c.DiagAddr, "diag_addr", getEnv("SCOOP_DIAG_ADDR", ":9999"), "diag address")
	fs.StringVar(&c.Storage, "storage", getEnv("SCOOP_STORAGE", storageFile), "storage backend: file or badger")
	fs.StringVar(&c.DatabaseFile, "db", getEnv("SCOOP_DB_FILE", "./database.yml"), "database file for the file backend")
	fs.StringVar(&c.BadgerDir, "badger_dir", getEnv("SCOOP_BADGER_DIR", "./data"), "data directory for the badger backend")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	c.TestMode = getEnvBool("IS_TEST_MODE", false)
	c.LogLevel = getEnv("LOG_LEVEL", "info")

	switch c.Storage {
	case storageFile, storageBadger:
	default:
		return Config{}, fmt.Errorf("unknown storage %q", c.Storage)
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

// getEnvBool treats any set value that is not a recognised false as true.
func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}

	return b
}
