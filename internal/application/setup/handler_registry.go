package setup

import (
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/game"
	gameCommands "github.com/andrescamacho/homestead-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	houseCommands "github.com/andrescamacho/homestead-go/internal/application/house/commands"
	ledgerQueries "github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	stakeCommands "github.com/andrescamacho/homestead-go/internal/application/stake/commands"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	runner      *game.Runner
	middlewares []mediator.Middleware
}

// NewHandlerRegistry creates a new handler registry. Middlewares are installed in order, the
// first one outermost.
func NewHandlerRegistry(runner *game.Runner, middlewares ...mediator.Middleware) *HandlerRegistry {
	return &HandlerRegistry{runner: runner, middlewares: middlewares}
}

type registration func(m mediator.Mediator) error

func register[T mediator.Request](handler mediator.RequestHandler) registration {
	return func(m mediator.Mediator) error {
		return mediator.RegisterHandler[T](m, handler)
	}
}

func apply(m mediator.Mediator, group string, regs ...registration) error {
	for _, reg := range regs {
		if err := reg(m); err != nil {
			return fmt.Errorf("failed to register %s handlers: %w", group, err)
		}
	}
	return nil
}

// RegisterHouseHandlers registers the per-house economy commands: facilities, addons,
// items, firepit, durability and harvest
func (r *HandlerRegistry) RegisterHouseHandlers(m mediator.Mediator) error {
	items := gameCommands.NewBuyItemHandler(r.runner)
	return apply(m, "house",
		register[*gameCommands.ActivateHouseCommand](gameCommands.NewActivateHouseHandler(r.runner)),
		register[*gameCommands.UpgradeFacilityCommand](gameCommands.NewUpgradeFacilityHandler(r.runner)),
		register[*gameCommands.BuyAddonCommand](gameCommands.NewBuyAddonHandler(r.runner)),
		register[*gameCommands.SalvageAddonCommand](gameCommands.NewSalvageAddonHandler(r.runner)),
		register[*gameCommands.FertilizeGardenCommand](gameCommands.NewFertilizeGardenHandler(r.runner)),
		register[*gameCommands.BuyToolshedCommand](gameCommands.NewBuyToolshedHandler(r.runner)),
		register[*gameCommands.SwitchToolshedCommand](gameCommands.NewSwitchToolshedHandler(r.runner)),
		register[*gameCommands.BuyFireplaceCommand](items),
		register[*gameCommands.BuyHarvesterCommand](items),
		register[*gameCommands.BuyConcreteFoundationCommand](items),
		register[*gameCommands.BuyResourceOverdriveCommand](gameCommands.NewBuyResourceOverdriveHandler(r.runner)),
		register[*gameCommands.BurnLumberCommand](gameCommands.NewBurnLumberHandler(r.runner)),
		register[*gameCommands.FrontLoadFirepitCommand](gameCommands.NewFrontLoadFirepitHandler(r.runner)),
		register[*gameCommands.GatherLumberCommand](gameCommands.NewGatherLumberHandler(r.runner)),
		register[*gameCommands.FortifyCommand](gameCommands.NewFortifyHandler(r.runner)),
		register[*gameCommands.RepairCommand](gameCommands.NewRepairHandler(r.runner)),
		register[*gameCommands.HireHandymanCommand](gameCommands.NewHireHandymanHandler(r.runner)),
		register[*gameCommands.HarvestCommand](gameCommands.NewHarvestHandler(r.runner)),
		register[*gameCommands.BuyPowerWithLandtokenCommand](gameCommands.NewBuyPowerWithLandtokenHandler(r.runner)),
	)
}

// RegisterOwnershipHandlers registers minting, naming, transfer, staking and the admin grants
func (r *HandlerRegistry) RegisterOwnershipHandlers(m mediator.Mediator) error {
	stake := stakeCommands.NewStakeHandler(r.runner)
	return apply(m, "ownership",
		register[*houseCommands.MintHouseCommand](houseCommands.NewMintHouseHandler(r.runner)),
		register[*houseCommands.SetHouseNameCommand](houseCommands.NewSetHouseNameHandler(r.runner)),
		register[*houseCommands.TransferHouseCommand](houseCommands.NewTransferHouseHandler(r.runner)),
		register[*stakeCommands.StakeCommand](stake),
		register[*stakeCommands.UnstakeCommand](stake),
		register[*gameCommands.AddResourceByAdminCommand](gameCommands.NewAddResourceByAdminHandler(r.runner)),
		register[*gameCommands.GrantTokensCommand](gameCommands.NewGrantTokensHandler(r.runner)),
	)
}

// RegisterQueryHandlers registers every read model
func (r *HandlerRegistry) RegisterQueryHandlers(m mediator.Mediator) error {
	costs := gameQueries.NewGetCostHandler(r.runner)
	return apply(m, "query",
		register[*gameQueries.GetHouseDetailsQuery](gameQueries.NewGetHouseDetailsHandler(r.runner)),
		register[*gameQueries.GetHousesByOwnerQuery](gameQueries.NewGetHousesByOwnerHandler(r.runner)),
		register[*gameQueries.GetResourcesQuery](gameQueries.NewGetResourcesHandler(r.runner)),
		register[*gameQueries.GetRepairCostQuery](costs),
		register[*gameQueries.GetHarvestCostQuery](costs),
		register[*gameQueries.GetFirepitRemainDaysQuery](gameQueries.NewGetFirepitRemainDaysHandler(r.runner)),
		register[*gameQueries.ListEventsQuery](gameQueries.NewListEventsHandler(r.runner)),
		register[*ledgerQueries.GetEntriesQuery](ledgerQueries.NewGetEntriesHandler(r.runner)),
		register[*ledgerQueries.GetResourceFlowQuery](ledgerQueries.NewGetResourceFlowHandler(r.runner)),
	)
}

// CreateConfiguredMediator creates a new mediator with every handler and middleware installed
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range r.middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterHouseHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterOwnershipHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterQueryHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}
