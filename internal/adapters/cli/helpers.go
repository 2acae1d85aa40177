package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gookit/color"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

var (
	styleHeading = color.Style{color.FgCyan, color.OpBold}
	styleOK      = color.Style{color.FgGreen, color.OpBold}
	styleWarn    = color.Style{color.FgYellow}
	styleDenied  = color.Style{color.FgRed, color.OpBold}
	styleSubtle  = color.Style{color.FgGray}
)

// resolveActor picks the acting address: the --actor flag, else the profile default
func resolveActor() (string, error) {
	if actorFlag != "" {
		return actorFlag, nil
	}
	profile, err := config.LoadProfile()
	if err != nil {
		return "", fmt.Errorf("no actor specified and %w", err)
	}
	if profile.DefaultActor == "" {
		return "", fmt.Errorf("no actor specified: use --actor, or set a default with 'homestead config set-actor'")
	}
	return profile.DefaultActor, nil
}

// ownerOrActor returns the owner argument, falling back to the acting address
func ownerOrActor(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	return resolveActor()
}

func parseHouseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid house id %q", raw)
	}
	return id, nil
}

func parseIntArg(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", name, raw)
	}
	return d, nil
}

// parseSelector reads harvest slots: "all", or a comma list of token and resource kinds.
// Power is credited automatically and cannot be selected.
func parseSelector(raw string) (resource.Selector, error) {
	var sel resource.Selector
	if strings.EqualFold(strings.TrimSpace(raw), "all") {
		for i := range sel {
			sel[i] = true
		}
		return sel, nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "token") {
			sel[resource.SlotTokenReward] = true
			continue
		}
		kind, err := resource.ParseKind(part)
		if err != nil {
			return sel, err
		}
		if kind == resource.Power {
			return sel, fmt.Errorf("power is harvested automatically; select token or lumber, brick, concrete, steel")
		}
		sel[kind] = true
	}
	if !sel.Any() {
		return sel, fmt.Errorf("no harvest slot selected")
	}
	return sel, nil
}

// describeError prefixes a game rejection with its kind
func describeError(err error) error {
	if kind := shared.KindOf(err); kind != "" {
		return fmt.Errorf("rejected (%s): %w", kind, err)
	}
	return err
}

// printer renders responses for humans
type printer struct {
	out io.Writer
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) json(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, string(b))
	return err
}

func (p *printer) heading(format string, args ...interface{}) {
	fmt.Fprintln(p.out, styleHeading.Sprintf(format, args...))
}

func (p *printer) ok(format string, args ...interface{}) {
	fmt.Fprintln(p.out, styleOK.Sprint("✓ ")+fmt.Sprintf(format, args...))
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) field(label string, value interface{}) {
	fmt.Fprintf(p.out, "  %-18s %v\n", label+":", value)
}

func (p *printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
}

// formatBundle lists the non-zero kinds of a bundle, e.g. "10 LUMBER, 5 BRICK"
func formatBundle(b resource.Bundle) string {
	var parts []string
	for _, kind := range resource.AllKinds() {
		if v := b.Get(kind); !v.IsZero() {
			parts = append(parts, fmt.Sprintf("%s %s", formatDecimal(v), kind))
		}
	}
	if len(parts) == 0 {
		return styleSubtle.Sprint("nothing")
	}
	return strings.Join(parts, ", ")
}

// formatSigned renders a ledger delta with explicit signs
func formatSigned(b resource.Bundle) string {
	var parts []string
	for _, kind := range resource.AllKinds() {
		v := b.Get(kind)
		if v.IsZero() {
			continue
		}
		sign := "+"
		if v.IsNegative() {
			sign = ""
		}
		parts = append(parts, fmt.Sprintf("%s%s %s", sign, formatDecimal(v), kind))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}

func formatDecimal(d decimal.Decimal) string {
	return d.Round(4).String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return styleSubtle.Sprint("-")
	}
	return formatTime(*t)
}

func yesNo(b bool) string {
	if b {
		return styleOK.Sprint("yes")
	}
	return styleSubtle.Sprint("no")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func invalidChoice(name, got string, choices ...string) error {
	return fmt.Errorf("invalid %s %q: expected one of %s", name, got, strings.Join(choices, ", "))
}

func pluralDays(n int64) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
