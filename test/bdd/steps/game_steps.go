package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	gameCommands "github.com/andrescamacho/homestead-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/homestead-go/internal/application/game/queries"
	houseCommands "github.com/andrescamacho/homestead-go/internal/application/house/commands"
	stakeCommands "github.com/andrescamacho/homestead-go/internal/application/stake/commands"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

type gameContext struct {
	game    *helpers.TestGame
	houses  map[string]int64
	err     error
	salvage *gameCommands.SalvageAddonResponse
	harvest *gameCommands.HarvestResponse
}

func (ctx *gameContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	g, err := helpers.NewTestGame(helpers.SharedTestDB)
	if err != nil {
		return err
	}
	ctx.game = g
	ctx.houses = make(map[string]int64)
	ctx.err = nil
	ctx.salvage = nil
	ctx.harvest = nil
	return nil
}

func (ctx *gameContext) houseID(name string) (int64, error) {
	id, ok := ctx.houses[name]
	if !ok {
		return 0, fmt.Errorf("house %q was never minted in this scenario", name)
	}
	return id, nil
}

func (ctx *gameContext) details(name string) (*gameQueries.HouseDTO, error) {
	id, err := ctx.houseID(name)
	if err != nil {
		return nil, err
	}
	resp, err := ctx.game.Send(&gameQueries.GetHouseDetailsQuery{HouseID: id})
	if err != nil {
		return nil, err
	}
	return resp.(*gameQueries.GetHouseDetailsResponse).House, nil
}

func (ctx *gameContext) resources(owner string) (*gameQueries.GetResourcesResponse, error) {
	resp, err := ctx.game.Send(&gameQueries.GetResourcesQuery{Owner: owner})
	if err != nil {
		return nil, err
	}
	return resp.(*gameQueries.GetResourcesResponse), nil
}

// send runs an operation whose outcome a later step asserts on
func (ctx *gameContext) send(request interface{}) interface{} {
	resp, err := ctx.game.Send(request)
	ctx.err = err
	return resp
}

func parseAddonList(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid addon id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func assertDecimal(what, expected string, actual decimal.Decimal) error {
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", expected, err)
	}
	if !want.Equal(actual) {
		return fmt.Errorf("expected %s to be %s, got %s", what, want, actual)
	}
	return nil
}

// Setup

func (ctx *gameContext) ownsAnActiveHouse(owner, name string) error {
	id, err := ctx.game.ActiveHouse(owner, false)
	if err != nil {
		return err
	}
	ctx.houses[name] = id
	return nil
}

func (ctx *gameContext) ownsAnInactiveHouse(owner, name string) error {
	id, err := ctx.game.MintHouse(owner, false)
	if err != nil {
		return err
	}
	ctx.houses[name] = id
	return nil
}

func (ctx *gameContext) hasResources(owner string, power, lumber, brick, concrete, steel int64) error {
	return ctx.game.Fund(owner, power, lumber, brick, concrete, steel)
}

func (ctx *gameContext) hasTokens(owner string, land, asset int64) error {
	return ctx.game.GrantTokens(owner, land, asset)
}

func (ctx *gameContext) daysPass(days float64) error {
	ctx.game.Clock.AdvanceDays(days)
	return nil
}

func (ctx *gameContext) theStandardHarvestLimitIs(limit string) error {
	value, err := decimal.NewFromString(limit)
	if err != nil {
		return err
	}
	ctx.game.Table.Harvest.StandardLimit = value
	return nil
}

func (ctx *gameContext) boughtAddons(owner, list, name string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	addons, err := parseAddonList(list)
	if err != nil {
		return err
	}
	for _, addon := range addons {
		if _, err := ctx.game.Send(&gameCommands.BuyAddonCommand{Actor: owner, HouseID: id, AddonID: addon}); err != nil {
			return fmt.Errorf("failed to buy addon %d: %w", addon, err)
		}
	}
	return nil
}

// Operations

func (ctx *gameContext) activates(actor, name string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	ctx.send(&gameCommands.ActivateHouseCommand{Actor: actor, HouseID: id})
	return nil
}

func (ctx *gameContext) upgrades(actor, facility, name string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	ctx.send(&gameCommands.UpgradeFacilityCommand{Actor: actor, HouseID: id, Facility: facility})
	return nil
}

func (ctx *gameContext) buysAddon(actor string, addon int, name string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	ctx.send(&gameCommands.BuyAddonCommand{Actor: actor, HouseID: id, AddonID: addon})
	return nil
}

func (ctx *gameContext) salvagesAddon(actor string, addon int, name string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	ctx.salvage = nil
	if resp, ok := ctx.send(&gameCommands.SalvageAddonCommand{Actor: actor, HouseID: id, AddonID: addon}).(*gameCommands.SalvageAddonResponse); ok {
		ctx.salvage = resp
	}
	return nil
}

func (ctx *gameContext) fortifies(actor, name, material string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	ctx.send(&gameCommands.FortifyCommand{Actor: actor, HouseID: id, Material: material})
	return nil
}

func (ctx *gameContext) repairs(actor, name string, amount int64) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	ctx.send(&gameCommands.RepairCommand{Actor: actor, HouseID: id, Amount: decimal.NewFromInt(amount)})
	return nil
}

func (ctx *gameContext) hiresHandyman(actor, name string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	ctx.send(&gameCommands.HireHandymanCommand{Actor: actor, HouseID: id})
	return nil
}

func (ctx *gameContext) stakes(actor string, amount int64, name string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	_, err = ctx.game.Send(&stakeCommands.StakeCommand{Actor: actor, HouseID: id, Amount: decimal.NewFromInt(amount)})
	return err
}

func (ctx *gameContext) harvests(actor, slots, name string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	var sel resource.Selector
	for _, part := range strings.Split(slots, ",") {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, "token") {
			sel[resource.SlotTokenReward] = true
			continue
		}
		kind, err := resource.ParseKind(part)
		if err != nil {
			return err
		}
		sel[kind] = true
	}
	ctx.harvest = nil
	if resp, ok := ctx.send(&gameCommands.HarvestCommand{Actor: actor, HouseID: id, Selector: sel}).(*gameCommands.HarvestResponse); ok {
		ctx.harvest = resp
	}
	return nil
}

func (ctx *gameContext) transfers(actor, name, to string) error {
	id, err := ctx.houseID(name)
	if err != nil {
		return err
	}
	ctx.send(&houseCommands.TransferHouseCommand{Actor: actor, HouseID: id, To: to})
	return nil
}

// Outcomes

func (ctx *gameContext) theOperationSucceeds() error {
	if ctx.err != nil {
		return fmt.Errorf("expected success, got: %w", ctx.err)
	}
	return nil
}

func (ctx *gameContext) theOperationIsRejectedAs(kind string) error {
	if ctx.err == nil {
		return fmt.Errorf("expected a %s rejection, but the operation succeeded", kind)
	}
	if got := shared.KindOf(ctx.err); got != shared.ErrorKind(kind) {
		return fmt.Errorf("expected a %s rejection, got %q: %v", kind, got, ctx.err)
	}
	return nil
}

func (ctx *gameContext) shouldHaveResource(owner, amount, kindName string) error {
	kind, err := resource.ParseKind(kindName)
	if err != nil {
		return err
	}
	res, err := ctx.resources(owner)
	if err != nil {
		return err
	}
	return assertDecimal(owner+"'s "+kindName, amount, res.Balances.Get(kind))
}

func (ctx *gameContext) shouldHaveLandToken(owner, amount string) error {
	res, err := ctx.resources(owner)
	if err != nil {
		return err
	}
	return assertDecimal(owner+"'s land token", amount, res.LandToken)
}

func (ctx *gameContext) houseShouldHavePending(name, amount, kindName string) error {
	kind, err := resource.ParseKind(kindName)
	if err != nil {
		return err
	}
	h, err := ctx.details(name)
	if err != nil {
		return err
	}
	return assertDecimal("pending "+kindName, amount, h.PendingRewards.Get(kind))
}

func (ctx *gameContext) houseShouldHaveDurability(name, amount string) error {
	h, err := ctx.details(name)
	if err != nil {
		return err
	}
	return assertDecimal("durability", amount, h.Durability)
}

func (ctx *gameContext) houseShouldHaveMaxDurability(name, amount string) error {
	h, err := ctx.details(name)
	if err != nil {
		return err
	}
	return assertDecimal("max durability", amount, h.MaxDurability)
}

func (ctx *gameContext) houseShouldOwnAddons(name, list string) error {
	want, err := parseAddonList(list)
	if err != nil {
		return err
	}
	h, err := ctx.details(name)
	if err != nil {
		return err
	}
	var got []int
	for _, a := range h.Addons {
		got = append(got, a.ID)
	}
	if !equalInts(want, got) {
		return fmt.Errorf("expected addons %v, got %v", want, got)
	}
	return nil
}

func (ctx *gameContext) houseShouldBeDead(name string) error {
	h, err := ctx.details(name)
	if err != nil {
		return err
	}
	if !h.Dead {
		return fmt.Errorf("expected house %q to be dead", name)
	}
	return nil
}

func (ctx *gameContext) houseShouldBelongTo(name, owner string) error {
	h, err := ctx.details(name)
	if err != nil {
		return err
	}
	if h.Owner != owner {
		return fmt.Errorf("expected house %q to belong to %s, got %s", name, owner, h.Owner)
	}
	return nil
}

func (ctx *gameContext) theSalvageShouldHaveCascadedTo(list string) error {
	if ctx.salvage == nil {
		return fmt.Errorf("no salvage response recorded")
	}
	want, err := parseAddonList(list)
	if err != nil {
		return err
	}
	if !equalInts(want, ctx.salvage.Cascaded) {
		return fmt.Errorf("expected cascade %v, got %v", want, ctx.salvage.Cascaded)
	}
	return nil
}

func (ctx *gameContext) theHarvestShouldHavePaid(amount string) error {
	if ctx.harvest == nil {
		return fmt.Errorf("no harvest response recorded")
	}
	return assertDecimal("harvested land token", amount, ctx.harvest.Token)
}

func (ctx *gameContext) theLastEventShouldBe(typ string) error {
	types := ctx.game.Events.Types()
	if len(types) == 0 {
		return fmt.Errorf("no events were published")
	}
	if last := types[len(types)-1]; last != event.Type(typ) {
		return fmt.Errorf("expected last event %s, got %s", typ, last)
	}
	return nil
}

func (ctx *gameContext) anEventShouldHaveBeenPublished(typ string) error {
	if ctx.game.Events.Last(event.Type(typ)) == nil {
		return fmt.Errorf("expected a %s event among %v", typ, ctx.game.Events.Types())
	}
	return nil
}

// InitializeGameScenario registers the game step definitions
func InitializeGameScenario(sc *godog.ScenarioContext) {
	ctx := &gameContext{}

	sc.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		return c, ctx.reset()
	})

	sc.Step(`^(\w+) owns an active house "([^"]*)"$`, ctx.ownsAnActiveHouse)
	sc.Step(`^(\w+) owns an inactive house "([^"]*)"$`, ctx.ownsAnInactiveHouse)
	sc.Step(`^(\w+) has (\d+) power, (\d+) lumber, (\d+) brick, (\d+) concrete and (\d+) steel$`, ctx.hasResources)
	sc.Step(`^(\w+) has (\d+) land token and (\d+) asset token$`, ctx.hasTokens)
	sc.Step(`^(\d+(?:\.\d+)?) days? pass(?:es)?$`, ctx.daysPass)
	sc.Step(`^the standard harvest limit is (\S+)$`, ctx.theStandardHarvestLimitIs)
	sc.Step(`^(\w+) bought addons "([^"]*)" for house "([^"]*)"$`, ctx.boughtAddons)
	sc.Step(`^(\w+) fortifies house "([^"]*)" with (\w+)$`, ctx.fortifies)
	sc.Step(`^(\w+) stakes (\d+) asset token on house "([^"]*)"$`, ctx.stakes)

	sc.Step(`^(\w+) activates house "([^"]*)"$`, ctx.activates)
	sc.Step(`^(\w+) upgrades the (\w+) of house "([^"]*)"$`, ctx.upgrades)
	sc.Step(`^(\w+) buys addon (\d+) for house "([^"]*)"$`, ctx.buysAddon)
	sc.Step(`^(\w+) salvages addon (\d+) from house "([^"]*)"$`, ctx.salvagesAddon)
	sc.Step(`^(\w+) repairs house "([^"]*)" by (\d+)$`, ctx.repairs)
	sc.Step(`^(\w+) hires a handyman for house "([^"]*)"$`, ctx.hiresHandyman)
	sc.Step(`^(\w+) harvests "([^"]*)" from house "([^"]*)"$`, ctx.harvests)
	sc.Step(`^(\w+) transfers house "([^"]*)" to (\w+)$`, ctx.transfers)

	sc.Step(`^the operation succeeds$`, ctx.theOperationSucceeds)
	sc.Step(`^the operation is rejected as (\w+)$`, ctx.theOperationIsRejectedAs)
	sc.Step(`^(\w+) should have (\S+) (power|lumber|brick|concrete|steel)$`, ctx.shouldHaveResource)
	sc.Step(`^(\w+) should have (\S+) land token$`, ctx.shouldHaveLandToken)
	sc.Step(`^house "([^"]*)" should have (\S+) (power|lumber|brick|concrete|steel) pending$`, ctx.houseShouldHavePending)
	sc.Step(`^house "([^"]*)" should have durability (\S+)$`, ctx.houseShouldHaveDurability)
	sc.Step(`^house "([^"]*)" should have max durability (\S+)$`, ctx.houseShouldHaveMaxDurability)
	sc.Step(`^house "([^"]*)" should own addons "([^"]*)"$`, ctx.houseShouldOwnAddons)
	sc.Step(`^house "([^"]*)" should be dead$`, ctx.houseShouldBeDead)
	sc.Step(`^house "([^"]*)" should belong to (\w+)$`, ctx.houseShouldBelongTo)
	sc.Step(`^the salvage should have cascaded to addons "([^"]*)"$`, ctx.theSalvageShouldHaveCascadedTo)
	sc.Step(`^the harvest should have paid (\S+) land token$`, ctx.theHarvestShouldHavePaid)
	sc.Step(`^the last event should be "([^"]*)"$`, ctx.theLastEventShouldBe)
	sc.Step(`^an? "([^"]*)" event should have been published$`, ctx.anEventShouldHaveBeenPublished)
}
