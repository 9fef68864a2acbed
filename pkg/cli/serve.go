package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/cli/config"
	controller "github.com/m-mizutani/relboard/pkg/controller/http"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		llmCfg     config.LLM
		storeCfg   config.Store
		fixtureCfg config.Fixture
		slackCfg   config.Slack
		sentryCfg  config.Sentry
		authCfg    config.Auth
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, storeCfg.Flags()...)
	flags = append(flags, fixtureCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting relboard server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("llm", llmCfg),
				slog.Any("slack", slackCfg),
				slog.Any("sentry", sentryCfg),
				slog.Any("auth", authCfg),
			)

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			repo, closeRepo, err := storeCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			if err := seedIfEmpty(ctx, repo, &fixtureCfg, &storeCfg); err != nil {
				return err
			}

			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return err
			}

			// Create use cases
			opts := []usecase.Option{
				usecase.WithPageSize(serverCfg.PageSize),
				usecase.WithSystemPrompt(llmCfg.SystemPrompt),
			}
			if notifier := slackCfg.Configure(); notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}
			ucs := usecase.New(repo, llmClient, opts...)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				ucs.Dashboard,
				ucs.Release,
				ucs.Incident,
				ucs.Chat,
				controller.WithAddr(serverCfg.Addr),
				controller.WithActivityLimit(serverCfg.ActivityLimit),
				controller.WithJWTSecret(authCfg.JWTSecret),
				controller.WithStoreName(repo.Name()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// seedIfEmpty loads the fixture into a store that has no releases yet, so a
// persistent store keeps its edits across restarts
func seedIfEmpty(ctx context.Context, repo interfaces.Repository, fixtureCfg *config.Fixture, storeCfg *config.Store) error {
	releases, err := repo.ListReleases(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to check store contents")
	}
	if len(releases) > 0 {
		ctxlog.From(ctx).Info("Store already populated, skip seeding", "releases", len(releases))
		return nil
	}

	fx, err := fixtureCfg.Configure(ctx, storeCfg.ClientOptions()...)
	if err != nil {
		return err
	}
	return usecase.Seed(ctx, repo, fx, time.Now())
}
