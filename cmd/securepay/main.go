package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kevin07696/securepay-periodic/internal/adapters/postgres"
	"github.com/kevin07696/securepay-periodic/internal/adapters/securepay"
	"github.com/kevin07696/securepay-periodic/internal/config"
	"github.com/kevin07696/securepay-periodic/pkg/observability"
	"github.com/kevin07696/securepay-periodic/pkg/shutdown"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	action    string
	clientID  string
	card      string
	expiry    string
	reference string
	amount    string
	file      string
	out       string
	limit     int
}

func main() {
	var opts options
	flag.StringVar(&opts.action, "action", "", "Action to perform: store, update, debit, batch, history, issuer")
	flag.StringVar(&opts.clientID, "client", "", "Client ID the card is stored under")
	flag.StringVar(&opts.card, "card", "", "Card number (store, update, issuer)")
	flag.StringVar(&opts.expiry, "expiry", "", "Card expiry as MMYY (store, update)")
	flag.StringVar(&opts.reference, "ref", "", "Transaction reference (debit)")
	flag.StringVar(&opts.amount, "amount", "", "Amount in major units, e.g. 12.50 (debit)")
	flag.StringVar(&opts.file, "file", "", "CSV of client_id,reference,amount, or - for stdin (batch)")
	flag.StringVar(&opts.out, "out", "", "Write batch results CSV here instead of stdout")
	flag.IntVar(&opts.limit, "limit", 20, "Number of exchanges to show (history)")
	flag.Parse()

	if opts.action == "" {
		usage()
		os.Exit(2)
	}

	// issuer needs neither configuration nor network
	if opts.action == "issuer" {
		os.Exit(runIssuer(opts))
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Load Env Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := run(ctx, cfg, opts, logger)
	if err != nil {
		logger.Error("Command failed", zap.String("action", opts.action), zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *zap.Logger) (int, error) {
	resources := shutdown.NewManager(logger, 5*time.Second)
	defer func() {
		if err := resources.Shutdown(); err != nil {
			logger.Warn("Shutdown incomplete", zap.Error(err))
		}
	}()

	var db *postgres.DBExecutor
	if cfg.Database.URL != "" && (cfg.Database.AuditEnabled || opts.action == "history") {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		var err error
		db, err = postgres.Connect(connectCtx, cfg.Database.URL, cfg.Database.MaxConns)
		cancel()
		if err != nil {
			return 1, fmt.Errorf("connect audit database: %w", err)
		}
		resources.RegisterNoErr("audit-database", db.Close)
	}

	if cfg.Metrics.Enabled {
		health := observability.NewHealthChecker()
		if db != nil {
			health.AddPinger("database", db.GetDB())
		}
		server := observability.StartMetricsServer(cfg.Metrics.Port, health, logger)
		resources.RegisterHTTPServer("metrics-server", server)
	}

	merchant, err := loadMerchant(ctx, cfg, logger)
	if err != nil {
		return 1, err
	}

	cli := &CLI{
		ctx:      ctx,
		merchant: merchant,
		currency: cfg.Currency(),
		workers:  cfg.Batch.Workers,
		logger:   logger,
		stdout:   os.Stdout,
	}

	if opts.action == "history" {
		if db == nil {
			return 1, errors.New("history requires DATABASE_URL")
		}
		cli.history = postgres.NewExchangeLogRepository(db.GetDB())
		return cli.showHistory(opts.clientID, opts.limit)
	}

	gatewayOpts := []securepay.Option{}
	if db != nil && cfg.Database.AuditEnabled {
		gatewayOpts = append(gatewayOpts, securepay.WithExchangeLogger(postgres.NewExchangeLogRepository(db.GetDB())))
	}
	cli.gateway = securepay.NewPeriodicAdapter(merchant, &securepay.PeriodicConfig{
		Timeout:            cfg.Gateway.Timeout,
		InsecureSkipVerify: cfg.Gateway.InsecureSkipVerify,
		RequestsPerSecond:  cfg.Gateway.RateLimit,
		Burst:              cfg.Gateway.RateBurst,
		MaxResponseBytes:   securepay.DefaultPeriodicConfig().MaxResponseBytes,
	}, logger, gatewayOpts...)

	switch opts.action {
	case "store":
		return cli.storeCard(opts.clientID, opts.card, opts.expiry)
	case "update":
		return cli.updateCard(opts.clientID, opts.card, opts.expiry)
	case "debit":
		return cli.debit(opts.clientID, opts.reference, opts.amount)
	case "batch":
		return cli.batch(opts.file, opts.out)
	default:
		usage()
		return 2, fmt.Errorf("unknown action: %s", opts.action)
	}
}

func initLogger(cfg *config.Config) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// stdout is reserved for command output
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: securepay -action=<action> [options]

Actions:
  store    - Store a card:            -client ID -card PAN -expiry MMYY
  update   - Replace a stored card:   -client ID -card PAN -expiry MMYY
  debit    - Charge a stored card:    -client ID -ref REFERENCE -amount 12.50
  batch    - Debit from a CSV file:   -file debits.csv [-out results.csv]
  history  - Show recorded exchanges: -client ID [-limit 20]
  issuer   - Identify a card network: -card PAN

Configuration is read from the environment and an optional .env file.
Exit status: 0 approved, 3 declined, 1 error, 2 usage.
`)
}
