package pubsub

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const testProject = "draft-league-test"

// setupFakePubSub starts an in-process Pub/Sub server with the given topics.
func setupFakePubSub(t *testing.T, topics ...EventType) (*pstest.Server, option.ClientOption) {
	t.Helper()
	srv := pstest.NewServer()
	t.Cleanup(func() { srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx := context.Background()
	admin, err := pubsub.NewClient(ctx, testProject, option.WithGRPCConn(conn))
	require.NoError(t, err)
	for _, topic := range topics {
		_, err := admin.CreateTopic(ctx, string(topic))
		require.NoError(t, err)
	}
	return srv, option.WithGRPCConn(conn)
}

func TestSendMessage(t *testing.T) {
	srv, conn := setupFakePubSub(t, EventPlayerRegistered)
	m := metrics.NewMock()
	client := New(testProject, m, conn)
	defer client.Close()

	event := NewPlayerRegisteredEvent(228019100008316948, "Newbie", 1850)
	err := client.SendMessage(EventPlayerRegistered, event)

	require.NoError(t, err)
	assert.Equal(t, 1, m.EventsPublished(string(EventPlayerRegistered)))

	messages := srv.Messages()
	require.Len(t, messages, 1)
	var decoded PlayerRegisteredEvent
	require.NoError(t, client.ProcessMessage(messages[0].Data, &decoded))
	assert.Equal(t, event, decoded)
}

func TestSendMessage_UnknownTopic(t *testing.T) {
	_, conn := setupFakePubSub(t)
	m := metrics.NewMock()
	client := New(testProject, m, conn)
	defer client.Close()

	err := client.SendMessage(EventSetReported, SetReportedEvent{ID: "x"})

	assert.Error(t, err)
	assert.Equal(t, 0, m.EventsPublished(string(EventSetReported)))
}

func TestProcessMessage_InvalidPayload(t *testing.T) {
	c := &client{}
	var event PlayerPenalizedEvent

	err := c.ProcessMessage([]byte{0xc1}, &event)

	assert.Error(t, err)
}

func TestNewSetReportedEvent(t *testing.T) {
	set := league.Set{
		Stages: []league.Stage{
			{MapName: "Moray Towers", Mode: league.SplatZones},
			{MapName: "Kelp Dome", Mode: league.Rainmaker},
		},
	}
	report := league.SetReport{
		RecordID:   "recLog",
		ReportedAt: time.Date(2026, 4, 18, 20, 30, 0, 0, time.UTC),
		AlphaScore: 2,
		AlphaTally: league.ModeTally{league.SplatZones: 1, league.Rainmaker: 1},
		BravoTally: league.ModeTally{league.SplatZones: 0, league.Rainmaker: 0},
		Gain:       15,
		Loss:       10,
	}

	event := NewSetReportedEvent(set, report)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "recLog", event.RecordID)
	assert.Equal(t, map[string]int{"SZ": 1, "RM": 1}, event.AlphaTally)
	assert.Equal(t, []string{"Moray Towers SZ", "Kelp Dome RM"}, event.Stages)
}

func TestNewPlayerPenalizedEvent(t *testing.T) {
	adjustment := league.Adjustment{RecordID: "recAdj", PlayerRecordID: "recP", Points: -5, Notes: "Late"}

	first := NewPlayerPenalizedEvent(100, adjustment, false)
	second := NewPlayerPenalizedEvent(100, adjustment, true)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, -5, first.Points)
	assert.False(t, first.Linked)
	assert.True(t, second.Linked)
}
