package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/quangdm/stmail/internal/attach"
	"github.com/quangdm/stmail/internal/common"
	"github.com/quangdm/stmail/internal/config"
	"github.com/quangdm/stmail/internal/defaults"
	"github.com/quangdm/stmail/internal/handlers/web"
	"github.com/quangdm/stmail/internal/mail"
	"github.com/quangdm/stmail/internal/middlewares"
	"github.com/quangdm/stmail/internal/middlewares/csrf"
	"github.com/quangdm/stmail/internal/middlewares/sessions"
	"github.com/quangdm/stmail/internal/render"
	"github.com/quangdm/stmail/internal/send"
	"github.com/quangdm/stmail/params"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "stmail - send Gmail with persisted default content"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitHtmlEngine(templateDir string) *html.Engine {
	var htmlEngine *html.Engine
	if templateDir != "" {
		htmlEngine = html.NewFileSystem(http.Dir(templateDir), ".html")
	} else {
		renderFS, _ := fs.Sub(templateFS, "templates")
		htmlEngine = html.NewFileSystem(http.FS(renderFS), ".html")
	}
	return htmlEngine
}

// mustInitMongoClient connects to the document store and verifies
// connectivity. The application refuses to start without the store.
func mustInitMongoClient(ctx context.Context, mongoCfg config.MongoConfig) *mongo.Client {
	connectCtx, cancel := context.WithTimeout(ctx, params.MongoConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoCfg.URI))
	if err != nil {
		slog.Error("Failed to connect to document store", "error", err)
		os.Exit(1)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		slog.Error("Document store is unreachable", "error", err)
		os.Exit(1)
	}
	return client
}

func setupWebRoutes(
	router fiber.Router,
	staticDir string,
	ownerEmail string,
	sessionConfig sessions.Config,
	defaultsStore *defaults.Store,
	sendService *send.Service) {

	composeHandler := web.NewComposeHandler(ownerEmail, defaultsStore, sendService)

	router.Static("/static", staticDir)
	router.Use(sessions.New(sessionConfig))
	router.Use(csrf.New(csrf.Config{}))
	router.Get("/", composeHandler.GetCompose)
	router.Post("/defaults", composeHandler.PostDefaults)
	router.Post("/send", composeHandler.PostSend)
}

func run(ctx *cli.Context) error {
	config, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config.", "error", err)
		return err
	}

	mustInitLogger(config.Debug || ctx.IsSet(debugFlag.Name))

	globalVars := fiber.Map{
		"siteName":   config.SiteName,
		"ownerEmail": config.GmailEmail,
	}

	htmlEngine := mustInitHtmlEngine(config.TemplateDir)
	if err := render.Initialize(globalVars, config.TemplateDir); err != nil {
		slog.Error("Failed to initialize templates", "error", err)
		return err
	}

	mongoClient := mustInitMongoClient(ctx.Context, config.Mongo)
	defer mongoClient.Disconnect(context.Background())

	// services
	var (
		defaultsStore = defaults.NewStore(mongoClient)
		stager        = &attach.Stager{}
		mailSender    = mail.NewSMTPMailSender(params.SMTPHost, params.SMTPPortSSL, config.GmailEmail, config.GmailAppPassword)
		sendService   = send.NewService(config.GmailEmail, stager, mailSender)
	)

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		Views:         htmlEngine,
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(logger.New())
	router.Use(middlewares.InjectGlobalVars(globalVars))

	setupWebRoutes(
		router,
		config.StaticDir,
		config.GmailEmail,
		sessions.Config{
			Storage:        memory.New(),
			SessionMaxAge:  config.Session.SessionMaxAge,
			CookieSecure:   config.Session.CookieSecure,
			CookieHttpOnly: config.Session.CookieHttpOnly,
			CookieName:     config.Session.CookieName,
		},
		defaultsStore,
		sendService,
	)

	healthCheckCtx, term := context.WithCancel(ctx.Context)
	done := make(chan struct{})
	go common.StartHealthCheckServer(healthCheckCtx, done, mongoClient)
	defer func() {
		term()
		<-done
	}()
	return router.Listen(config.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
