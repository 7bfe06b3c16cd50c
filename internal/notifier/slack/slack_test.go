package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/metrics"
	"github.com/mauv0809/draft-league/internal/pubsub"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sectionText(t *testing.T, block slackapi.Block) string {
	t.Helper()
	section, ok := block.(*slackapi.SectionBlock)
	require.True(t, ok, "expected a section block, got %T", block)
	require.NotNil(t, section.Text)
	return section.Text.Text
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendPenaltyNotice_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := notifier.SendPenaltyNotice(pubsub.PlayerPenalizedEvent{DiscordID: 100, Points: -5, Linked: true}, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendPenaltyNotice")
}

func TestFormatSetReport(t *testing.T) {
	event := pubsub.SetReportedEvent{
		AlphaScore: 1,
		BravoScore: 3,
		AlphaTally: map[string]int{"SZ": 1, "TC": 0, "RM": 0, "CB": 0},
		BravoTally: map[string]int{"SZ": 1, "TC": 1, "RM": 0, "CB": 1},
		Stages:     []string{"Moray Towers SZ", "Kelp Dome TC"},
		Gain:       15,
		Loss:       10,
	}
	client := &Notifier{channelID: "C123"}

	msg := client.formatSetReport(event)
	require.Len(t, msg.Blocks.BlockSet, 5)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Set reported")

	assert.Equal(t, "*Bravo* won 3 - 1", sectionText(t, msg.Blocks.BlockSet[1]))
	assert.Equal(t, "Stages:\n1. Moray Towers SZ\n2. Kelp Dome TC", sectionText(t, msg.Blocks.BlockSet[2]))

	tallies, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, tallies.Fields, 2)
	assert.Equal(t, "*Alpha*\nSZ: 1", tallies.Fields[0].Text)
	assert.Equal(t, "*Bravo*\nCB: 1 | SZ: 1 | TC: 1", tallies.Fields[1].Text)

	footer, ok := msg.Blocks.BlockSet[4].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, footer.ContextElements.Elements, 1)
	assert.Equal(t, "+15.0 / -10.0 power", footer.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
}

func TestFormatSetReport_Draw(t *testing.T) {
	client := &Notifier{}

	msg := client.formatSetReport(pubsub.SetReportedEvent{AlphaScore: 2, BravoScore: 2})

	assert.Equal(t, "Draw 2 - 2", sectionText(t, msg.Blocks.BlockSet[1]))
	tallies := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Equal(t, "*Alpha*\nNo stage wins", tallies.Fields[0].Text)
}

func TestFormatPenaltyNotice(t *testing.T) {
	client := &Notifier{}

	linked := client.formatPenaltyNotice(pubsub.PlayerPenalizedEvent{DiscordID: 42, Points: -5, Notes: "Late to set", Linked: true})
	require.Len(t, linked.Blocks.BlockSet, 2)
	assert.Equal(t, "<@42> received *-5* points\n> Late to set", sectionText(t, linked.Blocks.BlockSet[1]))

	orphaned := client.formatPenaltyNotice(pubsub.PlayerPenalizedEvent{DiscordID: 42, Points: -5, AdjustmentID: "recAdj"})
	require.Len(t, orphaned.Blocks.BlockSet, 3)
	warning := orphaned.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	assert.Contains(t, warning.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text, "recAdj")
}

func TestFormatStanding(t *testing.T) {
	client := &Notifier{}
	player := league.Player{Name: "Inkling", PowerLevel: 2200, OverallWinRate: 0.625}

	msg := client.formatStanding(player, league.Standing{Placement: 2, Ordinal: "nd"})

	require.Len(t, msg.Blocks.BlockSet, 2)
	assert.Equal(t, "*Inkling* is 2nd with 2200.0 power", sectionText(t, msg.Blocks.BlockSet[0]))
	winRate := msg.Blocks.BlockSet[1].(*slackapi.ContextBlock)
	assert.Equal(t, "Win rate: 62.5%", winRate.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
}

func TestFormatStanding_NoPlacement(t *testing.T) {
	client := &Notifier{}
	player := league.Player{Name: "Octoling", OverallWinRate: league.UnknownWinRate}

	msg := client.formatStanding(player, league.Standing{Placement: -1, Ordinal: "-1"})

	require.Len(t, msg.Blocks.BlockSet, 1)
	assert.Equal(t, "*Octoling* has no placement yet.", sectionText(t, msg.Blocks.BlockSet[0]))
}

func TestFormatLeaderboard(t *testing.T) {
	client := &Notifier{}
	board := []league.RankedPlayer{
		{Player: league.Player{Name: "Alpha One", PowerLevel: 2400, OverallWinRate: 0.75}, Standing: league.Standing{Placement: 1, Ordinal: "st"}},
		{Player: league.Player{Name: "Bravo Two", PowerLevel: 2100, OverallWinRate: league.UnknownWinRate}, Standing: league.Standing{Placement: 2, Ordinal: "nd"}},
	}

	msg := client.formatLeaderboard(board)

	require.Len(t, msg.Blocks.BlockSet, 2)
	table := sectionText(t, msg.Blocks.BlockSet[1])
	assert.True(t, len(table) > 8)
	assert.Equal(t, "```\n", table[:4])
	assert.Contains(t, table, "Alpha One")
	assert.Contains(t, table, "2400.0")
	assert.Contains(t, table, "75.0%")
	assert.Contains(t, table, "Bravo Two")
}

func TestFormatLeaderboard_Empty(t *testing.T) {
	client := &Notifier{}

	msg := client.formatLeaderboard(nil)

	require.Len(t, msg.Blocks.BlockSet, 2)
	assert.Equal(t, "No players registered yet.", sectionText(t, msg.Blocks.BlockSet[1]))
}

func TestFormatResponsesReturnSlackMessages(t *testing.T) {
	client := &Notifier{}

	resp, err := client.FormatPlayerNotFoundResponse("123")
	require.NoError(t, err)
	msg, ok := resp.(slackapi.Message)
	require.True(t, ok)
	assert.Contains(t, sectionText(t, msg.Blocks.BlockSet[0]), "*123*")
}
