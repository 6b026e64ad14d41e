package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/cropet-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 27, 6, 0, 0, 0, time.UTC)
	rec := domain.CropParameters{
		Name:              "Winter Wheat",
		ClassNumber:       13,
		IsAnnual:          true,
		CurveName:         "Winter Wheat",
		Season:            domain.SeasonWinter,
		CropGDDTriggerDOY: 274,
	}

	msg, err := serializeToMessage(13, rec, now)
	require.NoError(t, err)

	assert.Equal(t, []byte("13"), msg.Key)
	assert.Contains(t, string(msg.Value), `"name":"Winter Wheat"`)
	assert.Contains(t, string(msg.Value), `"crop_gdd_trigger_doy":274`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "crop_name", msg.Headers[0].Key)
	assert.Equal(t, []byte("Winter Wheat"), msg.Headers[0].Value)
	assert.Equal(t, "season", msg.Headers[1].Key)
	assert.Equal(t, []byte("winter"), msg.Headers[1].Value)
	assert.Equal(t, "loaded_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestTableMessages_ColumnOrder(t *testing.T) {
	table := domain.NewTable()
	table.Put(7, domain.CropParameters{Name: "Field Corn"})
	table.Put(1, domain.CropParameters{Name: "Alfalfa"})
	table.Put(13, domain.CropParameters{Name: "Winter Wheat"})

	msgs, err := tableMessages(domain.Snapshot{Table: table, LoadedAt: time.Now()})
	require.NoError(t, err)

	keys := make([]string, len(msgs))
	for i, m := range msgs {
		keys[i] = string(m.Key)
	}
	assert.Equal(t, []string{"7", "1", "13"}, keys)
}

func TestTableMessages_Empty(t *testing.T) {
	msgs, err := tableMessages(domain.Snapshot{Table: domain.NewTable()})
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
