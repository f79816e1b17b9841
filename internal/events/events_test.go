package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit_DispatchesToSubscribers(t *testing.T) {
	m := NewManager(zerolog.Nop())

	var received []Event
	m.Subscribe(TradeExecuted, func(e Event) {
		received = append(received, e)
	})

	m.Emit(&TradeExecutedData{TradeID: "t1", ClientID: "client-1"})

	require.Len(t, received, 1)
	assert.Equal(t, TradeExecuted, received[0].Type)
	data, ok := received[0].Data.(*TradeExecutedData)
	require.True(t, ok)
	assert.Equal(t, "t1", data.TradeID)
	assert.False(t, received[0].OccurredAt.IsZero())
}

func TestEmit_OnlyMatchingTypeReceives(t *testing.T) {
	m := NewManager(zerolog.Nop())

	tradeEvents := 0
	catalogEvents := 0
	m.Subscribe(TradeExecuted, func(Event) { tradeEvents++ })
	m.Subscribe(CatalogRefreshed, func(Event) { catalogEvents++ })

	m.Emit(&CatalogRefreshedData{Entries: 13, Seeded: true})

	assert.Zero(t, tradeEvents)
	assert.Equal(t, 1, catalogEvents)
}

func TestEmit_MultipleHandlersRunInOrder(t *testing.T) {
	m := NewManager(zerolog.Nop())

	var order []int
	m.Subscribe(RecommendationsReady, func(Event) { order = append(order, 1) })
	m.Subscribe(RecommendationsReady, func(Event) { order = append(order, 2) })

	m.Emit(&RecommendationsReadyData{ClientID: "client-1", Side: "buy", Count: 5})

	assert.Equal(t, []int{1, 2}, order)
}

func TestEmit_NoSubscribersIsSafe(t *testing.T) {
	m := NewManager(zerolog.Nop())

	assert.NotPanics(t, func() {
		m.Emit(&TradeExecutedData{TradeID: "t1"})
	})
}
