package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/homestead-go/internal/domain/settings"
)

// AddonState is what one house holds of an addon
type AddonState int

const (
	AddonMissing AddonState = iota
	AddonOwned
	AddonActive
)

// AddonTreeFormatter renders the addon dependency graph with a house's holdings.
// An addon with several prerequisites appears under each of them.
type AddonTreeFormatter struct {
	table     *settings.Table
	states    map[settings.AddonID]AddonState
	useEmojis bool
}

// NewAddonTreeFormatter creates a formatter; states may be nil to render the bare catalog
func NewAddonTreeFormatter(table *settings.Table, states map[settings.AddonID]AddonState, useEmojis bool) *AddonTreeFormatter {
	if states == nil {
		states = map[settings.AddonID]AddonState{}
	}
	return &AddonTreeFormatter{table: table, states: states, useEmojis: useEmojis}
}

// FormatTree renders every addon reachable from the addons without prerequisites
func (f *AddonTreeFormatter) FormatTree() string {
	var roots []settings.AddonID
	for _, id := range f.table.AddonIDs() {
		spec, err := f.table.Addon(id)
		if err == nil && len(spec.Requires) == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		return "(no addons)"
	}

	var builder strings.Builder
	for i, id := range roots {
		f.formatNode(&builder, id, "", i == len(roots)-1)
	}
	return builder.String()
}

func (f *AddonTreeFormatter) formatNode(builder *strings.Builder, id settings.AddonID, prefix string, isLast bool) {
	linePrefix := prefix + "├── "
	childPrefix := prefix + "│   "
	if isLast {
		linePrefix = prefix + "└── "
		childPrefix = prefix + "    "
	}

	spec, err := f.table.Addon(id)
	if err != nil {
		return
	}
	builder.WriteString(fmt.Sprintf("%s%s %s%s\n", linePrefix, f.statusIcon(id), f.label(spec), f.details(spec)))

	children := f.table.DirectDependents(id)
	for i, child := range children {
		f.formatNode(builder, child, childPrefix, i == len(children)-1)
	}
}

func (f *AddonTreeFormatter) statusIcon(id settings.AddonID) string {
	state := f.states[id]
	if f.useEmojis {
		switch state {
		case AddonActive:
			return "✅"
		case AddonOwned:
			return "💤"
		default:
			return "⬜"
		}
	}
	switch state {
	case AddonActive:
		return styleOK.Sprint("[✓]")
	case AddonOwned:
		return styleWarn.Sprint("[~]")
	default:
		return "[ ]"
	}
}

func (f *AddonTreeFormatter) label(spec *settings.AddonSpec) string {
	name := fmt.Sprintf("#%d %s", spec.ID, spec.Name)
	if f.states[spec.ID] == AddonMissing {
		return styleSubtle.Sprint(name)
	}
	return name
}

func (f *AddonTreeFormatter) details(spec *settings.AddonSpec) string {
	var parts []string
	if spec.MultiplierPercent != 0 {
		parts = append(parts, fmt.Sprintf("+%d%%", spec.MultiplierPercent))
	}
	if spec.GatherBonus != 0 {
		parts = append(parts, fmt.Sprintf("+%d gather", spec.GatherBonus))
	}
	if spec.RequiresFortification != nil {
		parts = append(parts, "needs "+spec.RequiresFortification.String())
	}
	if spec.Lifetime > 0 {
		parts = append(parts, fmt.Sprintf("lasts %s", spec.Lifetime))
	}
	if len(spec.Requires) > 1 {
		parts = append(parts, fmt.Sprintf("%d prerequisites", len(spec.Requires)))
	}
	if len(parts) == 0 {
		return ""
	}
	return styleSubtle.Sprint(" (" + strings.Join(parts, ", ") + ")")
}

// FormatSummary counts the house's addons
func (f *AddonTreeFormatter) FormatSummary() string {
	total := len(f.table.AddonIDs())
	owned, active := 0, 0
	for _, state := range f.states {
		switch state {
		case AddonActive:
			active++
			owned++
		case AddonOwned:
			owned++
		}
	}
	return fmt.Sprintf("Addons: %d of %d owned, %d active", owned, total, active)
}
