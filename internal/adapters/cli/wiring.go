package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/adapters/api"
	"github.com/andrescamacho/homestead-go/internal/adapters/eventlog"
	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/setup"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/database"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/logging"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/tuning"
)

// Dispatcher sends a request to the game, in-process or over HTTP
type Dispatcher interface {
	Send(ctx context.Context, request mediator.Request) (mediator.Response, error)
}

// openDispatcher is swapped out by tests
var openDispatcher = defaultDispatcher

func defaultDispatcher(ctx context.Context) (Dispatcher, context.Context, func() error, error) {
	if serverURL != "" {
		actor, _ := resolveActor()
		return api.NewClient(serverURL, actor, nil), ctx, func() error { return nil }, nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, ctx, nil, fmt.Errorf("failed to load config: %w", err)
	}
	stack, err := buildStack(cfg, nil)
	if err != nil {
		return nil, ctx, nil, err
	}
	return stack.mediator, common.WithLogger(ctx, stack.logger), stack.Close, nil
}

// gameStack is everything one process needs to run game operations locally
type gameStack struct {
	db       *gorm.DB
	runner   *game.Runner
	mediator mediator.Mediator
	logger   *logging.Logger
	eventLog *eventlog.Writer
	logFile  io.Closer
}

// buildStack opens the database, loads the tuning table and wires the runner and mediator.
// Extra publishers receive committed events after the event log.
func buildStack(cfg *config.Config, publishers []event.Publisher, middlewares ...mediator.Middleware) (*gameStack, error) {
	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	stack := &gameStack{logger: logger, logFile: logCloser}

	db, err := database.Open(cfg.Database)
	if err != nil {
		stack.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	stack.db = db

	table, err := tuning.Load(cfg.Game.TuningPath)
	if err != nil {
		stack.Close()
		return nil, err
	}

	var admin shared.Address
	if cfg.Game.Admin != "" {
		if admin, err = shared.NewAddress(cfg.Game.Admin); err != nil {
			stack.Close()
			return nil, fmt.Errorf("invalid game.admin: %w", err)
		}
	}

	var pubs []event.Publisher
	if cfg.Game.EventLog.Enabled {
		stack.eventLog = eventlog.NewWriter(cfg.Game.EventLog.Dir, cfg.Game.EventLog.Level)
		pubs = append(pubs, stack.eventLog)
	}
	pubs = append(pubs, publishers...)

	stack.runner = game.NewRunner(persistence.NewGormUnitOfWork(db), table, nil, admin, pubs...)
	m, err := setup.NewHandlerRegistry(stack.runner, middlewares...).CreateConfiguredMediator()
	if err != nil {
		stack.Close()
		return nil, err
	}
	stack.mediator = m
	return stack, nil
}

// Close releases the event log, the database and the log file, in that order
func (s *gameStack) Close() error {
	var errs []error
	if s.eventLog != nil {
		errs = append(errs, s.eventLog.Close())
	}
	if s.db != nil {
		errs = append(errs, database.Close(s.db))
	}
	if s.logFile != nil {
		errs = append(errs, s.logFile.Close())
	}
	return errors.Join(errs...)
}

// dispatch runs one request and hands the response to render, or prints it as JSON
func dispatch(cmd *cobra.Command, request mediator.Request, render func(p *printer, response mediator.Response)) error {
	d, ctx, closeFn, err := openDispatcher(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	response, err := d.Send(ctx, request)
	if err != nil {
		return describeError(err)
	}

	p := newPrinter(cmd.OutOrStdout())
	if jsonOutput {
		return p.json(response)
	}
	render(p, response)
	return nil
}
