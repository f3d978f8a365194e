package main

import (
	"context"
	"os"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/unlinked-app/unlinked/emails"
	"github.com/unlinked-app/unlinked/events"
	"github.com/unlinked-app/unlinked/filestore"
	"github.com/unlinked-app/unlinked/server"
	"github.com/unlinked-app/unlinked/server/handlers"
	"github.com/unlinked-app/unlinked/server/middlewares"
	"github.com/unlinked-app/unlinked/utils"
	"github.com/unlinked-app/unlinked/utils/dotenv"
	Flag "github.com/unlinked-app/unlinked/utils/flag"
	Logger "github.com/unlinked-app/unlinked/utils/log"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func init() {
	Flag.ParseFlags()
	// Re-init so the logger picks up the parsed service name.
	Logger.InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	middlewares.Setup()

	Logger.Log.Info("api server initialized")
}

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func newStatsdClient() *statsd.Client {
	client, err := statsd.New("127.0.0.1:8125")
	if err != nil {
		panic(err)
	}
	return client
}

func imageBucket() string {
	if dotenv.IsProdEnv() {
		return filestore.ProdS3ImageBucket
	}
	return filestore.TestS3Bucket
}

func main() {
	defer cleanup()

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatalf("fail to connect to DB: %v", err)
	}
	utils.DatabaseSetupAndMigration(db)

	images, err := filestore.NewS3ImageStore(imageBucket())
	if err != nil {
		Logger.Log.Fatalf("fail to create image store: %v", err)
	}

	sender, err := emails.NewSESSender()
	if err != nil {
		Logger.Log.Fatalf("fail to create email sender: %v", err)
	}

	// Email delivery runs on its own goroutines, decoupled from the request
	// path through the event bus. Started before the router so no event
	// published by a handler can race the subscriptions.
	eventbus := events.NewBus()
	dispatcher := events.NewDispatcher(eventbus, sender, newStatsdClient(), os.Getenv("FRONTEND_URL"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := dispatcher.Start(ctx); err != nil {
		Logger.Log.Fatalf("fail to start email dispatcher: %v", err)
	}

	h := handlers.New(db, images, eventbus, utils.GetRedisClient())
	router := server.NewRouter(db, h, gintrace.Middleware(Flag.ServiceName))

	Logger.Log.Info("api server starts up")
	router.Run(":8080")
}
