package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/99designs/gqlgen/graphql/playground"

	"github.com/FilipLeonard/blogql/graph"
	"github.com/FilipLeonard/blogql/internal/auth"
	"github.com/FilipLeonard/blogql/internal/config"
	"github.com/FilipLeonard/blogql/internal/images"
	"github.com/FilipLeonard/blogql/internal/post"
	"github.com/FilipLeonard/blogql/internal/storage/memory"
	"github.com/FilipLeonard/blogql/internal/storage/postgres"
	"github.com/FilipLeonard/blogql/internal/user"
	"github.com/FilipLeonard/blogql/models"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	var userStore user.Storage
	var postStore post.Storage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to init database: %v", err)
		}
		err := postgres.DB.AutoMigrate(&models.User{}, &models.Post{}).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		userStore = postgres.NewUserPostgresStorage()
		postStore = postgres.NewPostPostgresStorage()

	case "memory":
		log.Println("Используется in-memory хранилище")
		memUsers := memory.NewUserMemoryStorage()
		userStore = memUsers
		postStore = memory.NewPostMemoryStorage(memUsers)

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	// Инициализация резолвера
	resolver := &graph.Resolver{
		UserStore: userStore,
		PostStore: postStore,
		Images:    images.NewDir(config.GetEnvDefault("IMAGES_DIR", "images")),
	}

	srv := graph.NewHandler(resolver)

	// Middleware вытаскивает JWT из заголовка, валидирует его и кладет userId в context
	http.Handle("/query", auth.Middleware(srv))
	// Страница с тестовым интерфейсом Playground
	http.Handle("/", playground.Handler("GraphQL Playground", "/query"))

	server := &http.Server{
		Addr: ":" + config.GetEnvDefault("PORT", "8080"),
	}

	// ListenAndServe блокирует поток до Shutdown, поэтому запускаем в goroutine
	go func() {
		log.Printf("Сервер запущен на http://localhost%s/", server.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Завершение...")

	if *storageType == "postgres" {
		postgres.CloseDB()
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	log.Println("Сервер остановлен корректно")
}
