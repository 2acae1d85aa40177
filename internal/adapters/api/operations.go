package api

import (
	"fmt"
	"reflect"
	"sort"

	gameCommands "github.com/andrescamacho/homestead-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	houseCommands "github.com/andrescamacho/homestead-go/internal/application/house/commands"
	ledgerQueries "github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	stakeCommands "github.com/andrescamacho/homestead-go/internal/application/stake/commands"
)

// Operation names one mediator request on the wire. Commands carry the calling actor,
// which the server takes from the X-Actor header and never from the body.
type Operation struct {
	Name        string
	Command     bool
	NewRequest  func() mediator.Request
	NewResponse func() mediator.Response
}

func command[Req, Resp any](name string) Operation {
	return Operation{
		Name:        name,
		Command:     true,
		NewRequest:  func() mediator.Request { return new(Req) },
		NewResponse: func() mediator.Response { return new(Resp) },
	}
}

func query[Req, Resp any](name string) Operation {
	op := command[Req, Resp](name)
	op.Command = false
	return op
}

var operations = []Operation{
	command[gameCommands.ActivateHouseCommand, gameCommands.ActivateHouseResponse]("activate_house"),
	command[gameCommands.UpgradeFacilityCommand, gameCommands.UpgradeFacilityResponse]("upgrade_facility"),
	command[gameCommands.BuyAddonCommand, gameCommands.BuyAddonResponse]("buy_addon"),
	command[gameCommands.SalvageAddonCommand, gameCommands.SalvageAddonResponse]("salvage_addon"),
	command[gameCommands.FertilizeGardenCommand, gameCommands.FertilizeGardenResponse]("fertilize_garden"),
	command[gameCommands.BuyToolshedCommand, gameCommands.ToolshedResponse]("buy_toolshed"),
	command[gameCommands.SwitchToolshedCommand, gameCommands.ToolshedResponse]("switch_toolshed"),
	command[gameCommands.BuyFireplaceCommand, gameCommands.ItemResponse]("buy_fireplace"),
	command[gameCommands.BuyHarvesterCommand, gameCommands.ItemResponse]("buy_harvester"),
	command[gameCommands.BuyConcreteFoundationCommand, gameCommands.ItemResponse]("buy_concrete_foundation"),
	command[gameCommands.BuyResourceOverdriveCommand, gameCommands.BuyResourceOverdriveResponse]("buy_resource_overdrive"),
	command[gameCommands.BurnLumberCommand, gameCommands.BurnLumberResponse]("burn_lumber"),
	command[gameCommands.FrontLoadFirepitCommand, gameCommands.FrontLoadFirepitResponse]("front_load_firepit"),
	command[gameCommands.GatherLumberCommand, gameCommands.GatherLumberResponse]("gather_lumber"),
	command[gameCommands.FortifyCommand, gameCommands.FortifyResponse]("fortify"),
	command[gameCommands.RepairCommand, gameCommands.RepairResponse]("repair"),
	command[gameCommands.HireHandymanCommand, gameCommands.HireHandymanResponse]("hire_handyman"),
	command[gameCommands.HarvestCommand, gameCommands.HarvestResponse]("harvest"),
	command[gameCommands.BuyPowerWithLandtokenCommand, gameCommands.BuyPowerWithLandtokenResponse]("buy_power"),
	command[gameCommands.AddResourceByAdminCommand, gameCommands.AddResourceByAdminResponse]("add_resources"),
	command[gameCommands.GrantTokensCommand, gameCommands.GrantTokensResponse]("grant_tokens"),
	command[houseCommands.MintHouseCommand, houseCommands.MintHouseResponse]("mint_house"),
	command[houseCommands.SetHouseNameCommand, houseCommands.HouseResponse]("set_house_name"),
	command[houseCommands.TransferHouseCommand, houseCommands.HouseResponse]("transfer_house"),
	command[stakeCommands.StakeCommand, stakeCommands.StakeResponse]("stake"),
	command[stakeCommands.UnstakeCommand, stakeCommands.StakeResponse]("unstake"),

	query[gameQueries.GetHouseDetailsQuery, gameQueries.GetHouseDetailsResponse]("get_house"),
	query[gameQueries.GetHousesByOwnerQuery, gameQueries.GetHousesByOwnerResponse]("get_houses_by_owner"),
	query[gameQueries.GetResourcesQuery, gameQueries.GetResourcesResponse]("get_resources"),
	query[gameQueries.GetRepairCostQuery, gameQueries.CostResponse]("get_repair_cost"),
	query[gameQueries.GetHarvestCostQuery, gameQueries.CostResponse]("get_harvest_cost"),
	query[gameQueries.GetFirepitRemainDaysQuery, gameQueries.GetFirepitRemainDaysResponse]("get_firepit_remain_days"),
	query[gameQueries.ListEventsQuery, gameQueries.ListEventsResponse]("list_events"),
	query[ledgerQueries.GetEntriesQuery, ledgerQueries.GetEntriesResponse]("get_ledger_entries"),
	query[ledgerQueries.GetResourceFlowQuery, ledgerQueries.GetResourceFlowResponse]("get_resource_flow"),
}

var (
	operationsByName = make(map[string]Operation, len(operations))
	operationsByType = make(map[reflect.Type]Operation, len(operations))
)

func init() {
	for _, op := range operations {
		operationsByName[op.Name] = op
		operationsByType[reflect.TypeOf(op.NewRequest())] = op
	}
}

// LookupOperation finds an operation by wire name
func LookupOperation(name string) (Operation, bool) {
	op, ok := operationsByName[name]
	return op, ok
}

// OperationFor finds the operation a request value travels as
func OperationFor(request mediator.Request) (Operation, error) {
	op, ok := operationsByType[reflect.TypeOf(request)]
	if !ok {
		return Operation{}, fmt.Errorf("no operation for request type %T", request)
	}
	return op, nil
}

// OperationNames lists every wire name, sorted
func OperationNames() []string {
	names := make([]string, 0, len(operations))
	for _, op := range operations {
		names = append(names, op.Name)
	}
	sort.Strings(names)
	return names
}

func bindActor(request mediator.Request, actor string) {
	v := reflect.ValueOf(request).Elem()
	if f := v.FieldByName("Actor"); f.IsValid() && f.Kind() == reflect.String && f.CanSet() {
		f.SetString(actor)
	}
}
