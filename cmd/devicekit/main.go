package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/devicekit/pkg/config"
	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/deviceapi"
	"github.com/dmitrymomot/devicekit/pkg/environment"
	"github.com/dmitrymomot/devicekit/pkg/events"
	"github.com/dmitrymomot/devicekit/pkg/fingerprint"
	"github.com/dmitrymomot/devicekit/pkg/httpserver"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/redis"
	"github.com/dmitrymomot/devicekit/pkg/requestid"
	"github.com/dmitrymomot/devicekit/pkg/signals"
	"github.com/dmitrymomot/devicekit/pkg/useragent"
)

const usage = `usage: devicekit <command> [flags]

commands:
  serve   run the HTTP API
  local   print the descriptor of this host as JSON
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "devicekit:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	switch args[0] {
	case "serve":
		fs := flag.NewFlagSet("serve", flag.ContinueOnError)
		envFile := fs.String("env-file", "", "dotenv file to read instead of .env")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		var opts []config.Option
		if *envFile != "" {
			opts = append(opts, config.WithEnvFiles(*envFile))
		}
		cfg, err := config.Load[appConfig](opts...)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)

	case "local":
		fs := flag.NewFlagSet("local", flag.ContinueOnError)
		compact := fs.Bool("compact", false, "print on one line")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return describeLocal(stdout, !*compact)

	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newLogger(cfg appConfig) (*slog.Logger, error) {
	overrides, err := logger.FromConfig(cfg.Log)
	if err != nil {
		return nil, err
	}
	opts := append([]logger.Option{
		logger.WithEnvironment(environment.Parse(cfg.Env), cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			fingerprint.LoggerExtractor(),
		),
	}, overrides...)
	return logger.New(opts...), nil
}

func serve(ctx context.Context, cfg appConfig) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	apiOpts := []deviceapi.Option{
		deviceapi.WithLogger(log),
		deviceapi.WithEnvironment(environment.Parse(cfg.Env)),
		deviceapi.WithClassifier(useragent.NewClassifier(useragent.WithCache(cfg.ClassifierCacheSize))),
		deviceapi.WithSessionCapacity(cfg.SessionCapacity),
		deviceapi.WithEventBuffer(cfg.EventBufferSize),
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		apiOpts = append(apiOpts,
			deviceapi.WithSinks(events.NewRedisSink(client, cfg.Redis.ChannelPrefix)),
			deviceapi.WithHealthChecks(httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)}),
		)
		log.InfoContext(ctx, "publishing session events to redis",
			logger.Component("redis"),
			slog.String("channel_prefix", cfg.Redis.ChannelPrefix),
		)
	}

	api := deviceapi.New(apiOpts...)
	defer api.Close()

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, api.Routes()); err != nil {
		log.ErrorContext(ctx, "http server failed", logger.Error(err))
		return err
	}
	return nil
}

func describeLocal(w io.Writer, indent bool) error {
	info := device.NewSession(signals.Local()).DeviceInfo()
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(info)
}
