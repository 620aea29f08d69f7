package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sandevgo/shopdesk/internal/config"
	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/internal/providers/assistant"
	"github.com/sandevgo/shopdesk/internal/providers/tokens"
	"github.com/sandevgo/shopdesk/internal/service/chat"
	"github.com/sandevgo/shopdesk/internal/service/command"
	"github.com/sandevgo/shopdesk/internal/service/dispatch"
	"github.com/sandevgo/shopdesk/internal/service/session"
	"github.com/sandevgo/shopdesk/internal/storage/csvstore"
	"github.com/sandevgo/shopdesk/internal/storage/sqlite"
	"github.com/sandevgo/shopdesk/internal/transport/cli"
	"github.com/sandevgo/shopdesk/internal/transport/telegram"
	"github.com/sandevgo/shopdesk/pkg/log"
	"github.com/sandevgo/shopdesk/pkg/srv"
)

// desk holds what every command shares: configuration, record stores,
// the action dispatcher and, when enabled, the transcript store.
type desk struct {
	cfg         *config.AppConfig
	orders      *csvstore.OrderStore
	dispatcher  *dispatch.Dispatcher
	transcripts *sqlite.TranscriptsRepo
	cleanup     []srv.Service
}

func newDesk(ctx context.Context, withTranscripts bool) *desk {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	cfg := config.NewAppConfig(ctx)
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create runtime directory")
	}

	orders := csvstore.NewOrderStore(cfg.GetOrdersPath())
	d := &desk{
		cfg:        cfg,
		orders:     orders,
		dispatcher: dispatch.NewDispatcher(csvstore.NewContactStore(cfg.GetContactsPath()), orders),
	}

	if withTranscripts && cfg.EnableTranscripts {
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize transcript storage")
		}
		d.transcripts = sqlite.NewTranscriptsRepo(db)
		d.cleanup = append(d.cleanup, srv.NewCleanup(db.Close))
	}

	logger.Debug().
		Str("contacts", cfg.GetContactsPath()).
		Str("orders", cfg.GetOrdersPath()).
		Bool("transcripts", d.transcripts != nil).
		Msg("desk initialized")
	return d
}

// transcriptRepo keeps a disabled store a nil interface.
func (d *desk) transcriptRepo() core.TranscriptRepository {
	if d.transcripts == nil {
		return nil
	}
	return d.transcripts
}

// newSessions connects to the hosted assistant and returns a factory of
// conversation sessions bound to it.
func (d *desk) newSessions(ctx context.Context) *session.Manager {
	logger := log.FromCtx(ctx)

	aiCfg := config.NewOpenAIConfig(ctx)
	svc := assistant.NewOpenAI(aiCfg, dispatch.Definitions())

	assistantID, err := svc.Bootstrap(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare the assistant")
	}

	opts := session.DefaultOptions()
	opts.PollInterval = d.cfg.PollInterval
	opts.PollMaxInterval = d.cfg.PollMaxInterval
	opts.RunTimeout = d.cfg.RunTimeout
	opts.Transcripts = d.transcriptRepo()
	if d.cfg.MaxInputTokens > 0 {
		opts.MaxInputTokens = d.cfg.MaxInputTokens
		opts.Tokens = tokens.NewCounter(ctx, d.cfg.TokenizerEncoding)
	}

	return session.NewManager(func(ctx context.Context, key string) (*session.Session, error) {
		o := opts
		o.SessionID = key
		return session.New(ctx, svc, assistantID, d.dispatcher, o)
	})
}

func (d *desk) newChat(sessions *session.Manager) *chat.Handler {
	lookup := func(ctx context.Context, key string) (command.SessionInfo, error) {
		return sessions.Get(ctx, key)
	}
	router := command.New(command.NewCommands(d.orders, lookup, d.transcriptRepo()))
	return chat.NewHandler(router, sessions)
}

// NewServices wires the chat transports. stop ends the process when the
// terminal chat is closed.
func NewServices(ctx context.Context, stop func()) []srv.Service {
	logger := log.FromCtx(ctx)

	d := newDesk(ctx, true)
	services := append([]srv.Service{}, d.cleanup...)

	handler := d.newChat(d.newSessions(ctx))

	transports, err := initTransports(ctx, d.cfg, handler, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set DESK_ENABLE_CLI or DESK_ENABLE_TELEGRAM")
	}
	return append(services, transports...)
}

func initTransports(ctx context.Context, cfg *config.AppConfig, handler *chat.Handler, stop func()) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, handler)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(cfg, handler, newSessionID("cli"))
		if err != nil {
			return nil, fmt.Errorf("failed to start terminal chat: %w", err)
		}
		rl.OnExit = stop
		services = append(services, rl)
	}

	return services, nil
}

func newSessionID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
