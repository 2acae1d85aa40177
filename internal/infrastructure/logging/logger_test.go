package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/common"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/logging"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info", "text")

	logger.Log("DEBUG", "hidden", nil)
	logger.Log("INFO", "shown", map[string]interface{}{"house": 3})

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "house=3")
}

func TestLogger_JSONThroughContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := common.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug", "json"))

	common.LoggerFromContext(ctx).Log("ERROR", "boom", map[string]interface{}{"actor": "bob"})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "boom", record["msg"])
	assert.Equal(t, "bob", record["actor"])
}

func TestWithFields_MergesIntoEveryRecord(t *testing.T) {
	var buf bytes.Buffer
	ctx := common.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug", "json"))
	ctx = common.WithFields(ctx, map[string]interface{}{"route": "harvest", "actor": "nobody"})

	common.LoggerFromContext(ctx).Log("INFO", "done", map[string]interface{}{"actor": "carol"})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "harvest", record["route"])
	assert.Equal(t, "carol", record["actor"])
}
