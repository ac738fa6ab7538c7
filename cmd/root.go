package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	coreconfig "github.com/postpilothq/postpilot/core/config"
	domainGenerate "github.com/postpilothq/postpilot/domains/generate"
	domainHealth "github.com/postpilothq/postpilot/domains/health"
	domainPost "github.com/postpilothq/postpilot/domains/post"
	domainProfile "github.com/postpilothq/postpilot/domains/profile"
	"github.com/postpilothq/postpilot/infrastructure/valkey"
	"github.com/postpilothq/postpilot/pilot/application"
	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
	"github.com/postpilothq/postpilot/pilot/providers"
	"github.com/postpilothq/postpilot/pilot/repository"
	"github.com/postpilothq/postpilot/pkg/utils"
	uiWebsocket "github.com/postpilothq/postpilot/ui/websocket"
	"github.com/postpilothq/postpilot/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	// Stores
	profileRepo pilotDomain.IProfileRepository
	postRepo    pilotDomain.IPostRepository
	notifStore  *repository.MemoryNotificationStore

	// Background workers
	autoPilotEngine  *application.AutoPilotEngine
	publishScheduler *application.PublishScheduler
	appCancel        context.CancelFunc

	// Infrastructure
	vkClient *valkey.Client

	// Usecase
	profileUsecase  domainProfile.IProfileUsecase
	postUsecase     domainPost.IPostUsecase
	generateUsecase domainGenerate.IGenerateUsecase
	healthUsecase   domainHealth.IHealthUsecase
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "postpilot",
	Short: "Social media auto-pilot API",
	Long: `PostPilot generates and publishes social media posts from a topic
queue, either on demand or unattended through the Auto-Pilot loop.`,
}

var (
	flagPort     string
	flagDebug    bool
	flagInterval time.Duration
)

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig merges viper-read settings and flags into the global config.
func initEnvConfig() {
	if _, err := coreconfig.LoadConfig(); err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if envPort := viper.GetString("app_port"); envPort != "" {
		coreconfig.Global.App.Port = envPort
	}
	if viper.GetBool("app_debug") {
		coreconfig.Global.App.Debug = true
	}
	if envBasicAuth := viper.GetString("app_basic_auth"); envBasicAuth != "" {
		coreconfig.Global.App.BasicAuth = strings.Split(envBasicAuth, ",")
	}

	if flagPort != "" {
		coreconfig.Global.App.Port = flagPort
	}
	if flagDebug {
		coreconfig.Global.App.Debug = true
	}
	if flagInterval > 0 {
		coreconfig.Global.AutoPilot.Interval = flagInterval
	}
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&flagPort,
		"port", "p",
		"",
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagDebug,
		"debug", "d",
		false,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().DurationVarP(
		&flagInterval,
		"interval", "",
		0,
		"auto-pilot cycle interval --interval <duration> | example: --interval=45s",
	)
}

func openDatabase(cfg coreconfig.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)}

	switch cfg.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Name), 0o755); err != nil {
			return nil, err
		}
		return gorm.Open(gormSqlite.Open(cfg.Name), gormCfg)
	case "postgres":
		return gorm.Open(gormPostgres.Open(cfg.DSN), gormCfg)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func buildProvider(cfg coreconfig.AIConfig) pilotDomain.ContentProvider {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAI == "" {
			logrus.Warn("[APP] OPENAI_API_KEY not set, generation will fail until configured")
		}
		return providers.NewOpenAIProvider(cfg.OpenAI, cfg.Model)
	default:
		if cfg.Gemini == "" {
			logrus.Warn("[APP] GEMINI_API_KEY not set, generation will fail until configured")
		}
		return providers.NewGeminiProvider(cfg.Gemini, cfg.Model)
	}
}

func initApp() {
	cfg := coreconfig.Global

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	appCancel = cancel

	// Stores
	notifStore = repository.NewMemoryNotificationStore()
	notifStore.OnPush = uiWebsocket.PushNotification

	switch cfg.Database.Driver {
	case "memory":
		profileRepo = repository.NewMemoryProfileRepository()
		postRepo = repository.NewMemoryPostRepository()
	default:
		db, err := openDatabase(cfg.Database)
		if err != nil {
			logrus.Fatalf("failed to open database: %v", err)
		}
		profileRepo, err = repository.NewGormProfileRepository(db)
		if err != nil {
			logrus.Fatalf("failed to init profile store: %v", err)
		}
		postRepo, err = repository.NewGormPostRepository(db)
		if err != nil {
			logrus.Fatalf("failed to init post store: %v", err)
		}
	}

	// Valkey (optional): cycle locks and cross-replica notification fan-out.
	var lockFunc func(key string, expiration time.Duration) bool
	if cfg.Database.ValkeyEnabled {
		client, err := valkey.NewClient(valkey.Config{
			Address:   cfg.Database.ValkeyAddress,
			Password:  cfg.Database.ValkeyPassword,
			DB:        cfg.Database.ValkeyDB,
			KeyPrefix: cfg.Database.ValkeyKeyPrefix,
		})
		if err != nil {
			logrus.Warnf("[APP] Valkey unavailable, running standalone: %v", err)
		} else {
			vkClient = client
			lockFunc = client.AcquireLock
			serverID := utils.GetPersistentServerID(cfg.App.ServerID, "storages")
			uiWebsocket.SetValkeyClient(client, serverID)
		}
	}

	provider := buildProvider(cfg.AI)

	// Background workers
	autoPilotEngine = application.NewAutoPilotEngine(
		profileRepo, postRepo, notifStore, provider, cfg.AutoPilot.Interval, lockFunc,
	)
	publishScheduler = application.NewPublishScheduler(postRepo, notifStore, lockFunc)
	publishScheduler.StartLoop(ctx)

	// Usecases
	profileUsecase = usecase.NewProfileService(profileRepo, autoPilotEngine)
	postUsecase = usecase.NewPostService(postRepo, notifStore, publishScheduler)
	generateUsecase = usecase.NewGenerateService(profileRepo, provider, notifStore)
	healthUsecase = usecase.NewHealthService(cfg.Database.Driver, autoPilotEngine)

	// Resume auto-pilot if the stored profile says it was engaged.
	if prof, err := profileRepo.Get(ctx); err == nil && prof.AutoPilotEnabled {
		if err := autoPilotEngine.Start(ctx); err != nil {
			logrus.WithError(err).Warn("[APP] Could not resume auto-pilot from stored profile")
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of background workers and connections.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if autoPilotEngine != nil {
		autoPilotEngine.Stop()
	}
	if appCancel != nil {
		appCancel()
	}
	if vkClient != nil {
		vkClient.Close()
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
