package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fireplan/fireplan/internal/cache"
	"github.com/fireplan/fireplan/internal/calculation"
	"github.com/fireplan/fireplan/internal/config"
	"github.com/fireplan/fireplan/internal/logging"
	"github.com/fireplan/fireplan/internal/output"
	"github.com/fireplan/fireplan/internal/server"
	"github.com/fireplan/fireplan/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	inputFile string
	format    string
	writeFile bool
	debug     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fireplan",
		Short: "Deterministic FIRE projection and debt-payoff planning",
		Long: `fireplan projects a household's net worth month by month to a target
retirement age, allocating free cash flow through a configurable priority
waterfall, and compares debt-payoff strategies.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "plan.yaml", "plan YAML file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Run the monthly projection for a plan",
		RunE:  runProject,
	}
	projectCmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, json)")
	projectCmd.Flags().BoolVarP(&writeFile, "write", "w", false, "write output to a timestamped file instead of stdout")

	payoffCmd := &cobra.Command{
		Use:   "payoff",
		Short: "Compare avalanche and snowball debt-payoff strategies",
		RunE:  runPayoff,
	}
	payoffCmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, json)")
	payoffCmd.Flags().String("extra", "0", "extra monthly cash applied beyond minimum payments")

	exampleCmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewInputParser().WriteExamplePlan(inputFile); err != nil {
				return err
			}
			fmt.Printf("wrote example plan to %s\n", inputFile)
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection and payoff API over HTTP",
		RunE:  runServe,
	}

	rootCmd.AddCommand(projectCmd, payoffCmd, exampleCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newEngine() *calculation.Engine {
	engine := calculation.NewEngine()
	if debug {
		engine.SetLogger(logging.NewEngineAdapter(logging.Setup(true)))
	}
	return engine
}

func runProject(cmd *cobra.Command, args []string) error {
	plan, err := config.NewInputParser().LoadFromFile(inputFile)
	if err != nil {
		return err
	}
	result, err := newEngine().RunProjection(context.Background(), plan)
	if err != nil {
		return err
	}

	if writeFile {
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("unknown output format %q", format)
		}
		name, err := output.WriteFormatted(f, result)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", name)
		return nil
	}

	data, err := output.Render(result, format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runPayoff(cmd *cobra.Command, args []string) error {
	plan, err := config.NewInputParser().LoadFromFile(inputFile)
	if err != nil {
		return err
	}
	extraFlag, _ := cmd.Flags().GetString("extra")
	extra, err := decimal.NewFromString(extraFlag)
	if err != nil {
		return fmt.Errorf("invalid --extra value %q: %w", extraFlag, err)
	}

	cmp, err := newEngine().ComparePayoff(context.Background(), plan.Debts, extra)
	if err != nil {
		return err
	}

	switch output.NormalizeFormatName(format) {
	case "csv":
		data, err := output.FormatPayoffCSV(cmp)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	case "json":
		data, err := output.FormatPayoffJSON(cmp)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	case "console":
		_, err = os.Stdout.Write(output.FormatPayoffConsole(cmp))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadServerConfig()
	log := logging.Setup(cfg.Pretty)

	engine := calculation.NewEngine()
	engine.SetLogger(logging.NewEngineAdapter(log))

	var resultCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr)
		if err := redisCache.Ping(context.Background()); err != nil {
			return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		defer redisCache.Close()
		resultCache = redisCache
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis result cache")
	} else {
		resultCache = cache.NewMemory()
		log.Info().Msg("using in-memory result cache")
	}

	settings, err := store.Open(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	defer settings.Close()

	e := server.New(engine, resultCache, settings, log).Router()

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
