package shared_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func TestNewAddress(t *testing.T) {
	a, err := shared.NewAddress("  Alice.Farm ")
	require.NoError(t, err)
	assert.Equal(t, "alice.farm", a.String())
	assert.True(t, a.Equals(shared.MustNewAddress("ALICE.farm")))

	for _, raw := range []string{"", "   ", "-leading", "has space", "ünïcode"} {
		_, err := shared.NewAddress(raw)
		assert.True(t, shared.IsKind(err, shared.KindInvalidArgument), "address %q", raw)
	}

	assert.True(t, shared.Address{}.IsZero())
	assert.Panics(t, func() { shared.MustNewAddress("") })
}

func TestKindOf(t *testing.T) {
	conflict := shared.Errorf(shared.KindStateConflict, "addon %d already owned", 3)
	wrapped := fmt.Errorf("buy addon: %w", conflict)

	assert.Equal(t, shared.KindStateConflict, shared.KindOf(wrapped))
	assert.Equal(t, "addon 3 already owned", conflict.Error())
	assert.Equal(t, shared.KindInvalidArgument, shared.KindOf(shared.NewValidationError("amount", "cannot be negative")))
	assert.Equal(t, shared.ErrorKind(""), shared.KindOf(errors.New("disk full")))
	assert.True(t, shared.IsKind(shared.PermissionDenied("harvest"), shared.KindAuthorization))
}

func TestAmounts(t *testing.T) {
	assert.Equal(t, "0.666666666666666666", shared.Quo(decimal.NewFromInt(2), decimal.NewFromInt(3)).String())
	assert.Equal(t, "5.25", shared.Percent(decimal.NewFromInt(5), 105).String())

	d, err := shared.ParseAmount("lumber", "12.125")
	require.NoError(t, err)
	assert.Equal(t, "12.125", d.String())

	_, err = shared.ParseAmount("lumber", "abc")
	assert.EqualError(t, err, "lumber: not a number: abc")
	_, err = shared.ParseAmount("lumber", "-2")
	assert.EqualError(t, err, "lumber: cannot be negative")
	_, err = shared.ParseAmount("lumber", "0.0000000000000000001")
	assert.EqualError(t, err, "lumber: more than 18 decimals")
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)

	clock.AdvanceDays(0.5)
	assert.Equal(t, start.Add(12*time.Hour), clock.Now())

	clock.Advance(time.Hour)
	assert.Equal(t, start.Add(13*time.Hour), clock.Now())

	clock.SetTime(start)
	assert.Equal(t, start, clock.Now())
}
