package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/noisersup/files-manager-api/cache"
	"github.com/noisersup/files-manager-api/database"
	"github.com/noisersup/files-manager-api/logger"
	"github.com/noisersup/files-manager-api/queue"
	"github.com/noisersup/files-manager-api/server"
	"github.com/noisersup/files-manager-api/storage"
)

func main() {
	v := flag.Bool("v", false, "verbose output")
	flag.Parse()

	dbName := getEnv("DB_NAME", "files_manager")
	user := getEnv("DB_USER", "root")
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "26257")
	redisUrl := getEnv("REDIS_URL", "redis://localhost")
	folderPath := getEnv("FOLDER_PATH", "/tmp/files_manager")

	httpPort, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil {
		httpPort = 5000
	}

	l := logger.InitLogger(*v)

	dbPayload := fmt.Sprintf("postgresql://%s@%s:%s?sslmode=disable", user, host, port)
	l.LogV("Connecting to database %s with payload: %s", dbName, dbPayload)

	db, err := database.ConnectDB(dbPayload, dbName, l)
	if err != nil {
		l.Fatal(err.Error())
	}
	defer db.Close()

	c, err := cache.InitCache(redisUrl)
	if err != nil {
		l.Fatal(err.Error())
	}
	defer c.Close()

	q, err := queue.InitQueue(redisUrl, "fileQueue")
	if err != nil {
		l.Fatal(err.Error())
	}
	defer q.Close()

	store := storage.InitStorage(folderPath)

	s := server.NewServer(l, c, db, store, q)
	if err = s.Listen(httpPort); err != nil {
		l.Fatal(err.Error())
	}
}

func getEnv(envName, defValue string) string {
	env := os.Getenv(envName)
	if env == "" {
		return defValue
	}
	return env
}
