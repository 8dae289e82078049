package main

import (
	"os"

	"github.com/mediamux/mediamux/catalog"
	"github.com/mediamux/mediamux/feed"
	"github.com/mediamux/mediamux/library"
	"github.com/mediamux/mediamux/lists"
	"github.com/mediamux/mediamux/provider"
	"github.com/mediamux/mediamux/server"
	"github.com/mediamux/mediamux/server/handlers"
	"github.com/mediamux/mediamux/server/middlewares"
	"github.com/mediamux/mediamux/social"
	"github.com/mediamux/mediamux/userdir"
	"github.com/mediamux/mediamux/utils"
	"github.com/mediamux/mediamux/utils/dotenv"
	"github.com/mediamux/mediamux/utils/flag"
	Logger "github.com/mediamux/mediamux/utils/log"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	utils.StartTracer()
	utils.StartProfiler()

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	resetTokens, err := utils.GetResetTokenStore()
	if err != nil {
		Logger.Log.Fatal("fail to connect to redis: ", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		Logger.Log.Fatal("JWT_SECRET environment variable is required")
	}

	movies := provider.NewTMDBClient(provider.Config{APIKey: os.Getenv("TMDB_API_KEY")})
	books := provider.NewGoogleBooksClient(provider.Config{APIKey: os.Getenv("GOOGLE_BOOKS_API_KEY")})

	directory := userdir.NewDirectory(db, resetTokens, []byte(jwtSecret))
	middlewares.Setup(directory)

	recorder := feed.NewRecorder()
	handler := &handlers.Handler{
		DB:      db,
		Catalog: catalog.NewStore(db, movies, books),
		Library: library.NewService(db, recorder),
		Social:  social.NewGraph(db),
		Feed:    feed.NewAssembler(db),
		Lists:   lists.NewManager(db, recorder),
		Users:   directory,
		Movies:  movies,
		Books:   books,
	}

	router := server.New(handler)

	Logger.Log.Info("api server starts up")
	router.Run(":8080")
}
