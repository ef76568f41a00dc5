package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dmarins/parcelamento/internal/cache"
	"github.com/dmarins/parcelamento/internal/catalog"
	"github.com/dmarins/parcelamento/internal/config"
	"github.com/dmarins/parcelamento/internal/server"
	"github.com/dmarins/parcelamento/pkg/constants"
	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/quote"
	"github.com/dmarins/parcelamento/pkg/quotetext"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP quote API instead of printing a one-shot quote")
	storeID := flag.String("store", "", "store identifier for a one-shot quote")
	product := flag.String("product", "", "product name for a one-shot quote")
	price := flag.String("price", "", "product price for a one-shot quote, e.g. 6000 or 5.999,90")
	downPayment := flag.String("down-payment", "0", "down payment for a one-shot quote")
	tradeIn := flag.String("trade-in", "0", "trade-in credit for a one-shot quote")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings
	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range conf.Warnings() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	cat, err := catalog.NewMemory(conf)
	if err != nil {
		logger.Fatal("failed to build catalog",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *serve {
		runServer(logger, conf, cat)
		return
	}

	if err := printQuote(cat, *storeID, *product, *price, *downPayment, *tradeIn); err != nil {
		logger.Fatal("failed to compute quote",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func runServer(logger *zap.Logger, conf *config.Configuration, cat catalog.Catalog) {
	var quoteCache cache.Cache
	if conf.Server.RedisAddr != "" {
		quoteCache = cache.NewRedis(conf.Server.RedisAddr)
		logger.Info("using Redis quote cache",
			zap.String("op", "main"),
			zap.String("addr", conf.Server.RedisAddr),
		)
	} else {
		quoteCache = cache.NewMemory()
	}

	router := server.NewRouter(logger, cat, quoteCache, conf.Server)
	logger.Info("serving quote API",
		zap.String("op", "main"),
		zap.String("address", conf.Server.Address),
	)
	if err := http.ListenAndServe(conf.Server.Address, router); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// printQuote computes and prints a single quote from CLI flags. Amounts pass
// through the money parsing boundary, so both "6000" and "5.999,90" work.
func printQuote(cat catalog.Catalog, storeID, product, price, downPayment, tradeIn string) error {
	if storeID == "" {
		return fmt.Errorf("-store is required for a one-shot quote")
	}
	if price == "" {
		return fmt.Errorf("-price is required for a one-shot quote")
	}

	priceCents, err := money.Parse("price", price)
	if err != nil {
		return err
	}
	downCents, err := money.Parse("down-payment", downPayment)
	if err != nil {
		return err
	}
	tradeInCents, err := money.Parse("trade-in", tradeIn)
	if err != nil {
		return err
	}

	table, err := cat.RateTableForStore(storeID)
	if err != nil {
		return err
	}

	input := quote.Input{Price: priceCents, DownPayment: downCents, TradeInCredit: tradeInCents}
	computed, err := quote.Compute(input, table)
	if err != nil {
		return err
	}

	if product == "" {
		product = "Produto"
	}
	fmt.Println(quotetext.FormatBasicQuote(product, input, computed))
	return nil
}
