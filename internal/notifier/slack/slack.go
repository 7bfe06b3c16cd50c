package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/metrics"
	"github.com/mauv0809/draft-league/internal/notifier"
	"github.com/mauv0809/draft-league/internal/pubsub"
	"github.com/slack-go/slack"
	"github.com/syohex/go-texttable"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendSetReport(event pubsub.SetReportedEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatSetReport(event), dryRun)
	return err
}

func (s *Notifier) SendPenaltyNotice(event pubsub.PlayerPenalizedEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatPenaltyNotice(event), dryRun)
	return err
}

func (s *Notifier) SendRegistrationNotice(event pubsub.PlayerRegisteredEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatRegistrationNotice(event), dryRun)
	return err
}

// FormatStandingResponse formats a player's standing for a slash command response.
func (s *Notifier) FormatStandingResponse(player league.Player, standing league.Standing) (any, error) {
	return s.formatStanding(player, standing), nil
}

// FormatLeaderboardResponse formats the leaderboard for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(board []league.RankedPlayer) (any, error) {
	return s.formatLeaderboard(board), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatSetReport creates the Slack message for a reported set using Block Kit.
func (s *Notifier) formatSetReport(event pubsub.SetReportedEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🦑 Set reported! 🦑", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	winner := "Alpha"
	if event.BravoScore > event.AlphaScore {
		winner = "Bravo"
	}
	resultText := fmt.Sprintf("*%s* won %d - %d", winner, max(event.AlphaScore, event.BravoScore), min(event.AlphaScore, event.BravoScore))
	if event.AlphaScore == event.BravoScore {
		resultText = fmt.Sprintf("Draw %d - %d", event.AlphaScore, event.BravoScore)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", resultText, false, false), nil, nil))

	if len(event.Stages) > 0 {
		stageLines := make([]string, 0, len(event.Stages))
		for i, stage := range event.Stages {
			stageLines = append(stageLines, fmt.Sprintf("%d. %s", i+1, stage))
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Stages:\n"+strings.Join(stageLines, "\n"), true, false), nil, nil))
	}

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", "*Alpha*\n"+formatTally(event.AlphaTally), false, false),
		slack.NewTextBlockObject("mrkdwn", "*Bravo*\n"+formatTally(event.BravoTally), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	contextText := fmt.Sprintf("+%.1f / -%.1f power", event.Gain, event.Loss)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatTally renders mode wins in a stable order, skipping unplayed modes.
func formatTally(tally map[string]int) string {
	modes := make([]string, 0, len(tally))
	for mode, wins := range tally {
		if wins > 0 {
			modes = append(modes, mode)
		}
	}
	if len(modes) == 0 {
		return "No stage wins"
	}
	sort.Strings(modes)
	parts := make([]string, 0, len(modes))
	for _, mode := range modes {
		parts = append(parts, fmt.Sprintf("%s: %d", mode, tally[mode]))
	}
	return strings.Join(parts, " | ")
}

func (s *Notifier) formatPenaltyNotice(event pubsub.PlayerPenalizedEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚠️ Penalty issued", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	text := fmt.Sprintf("<@%d> received *%d* points", event.DiscordID, event.Points)
	if event.Notes != "" {
		text += fmt.Sprintf("\n> %s", event.Notes)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))

	if !event.Linked {
		warning := fmt.Sprintf("Adjustment %s is not linked to the player record yet.", event.AdjustmentID)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", warning, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatRegistrationNotice(event pubsub.PlayerRegisteredEvent) slack.Message {
	text := fmt.Sprintf("👋 *%s* joined the league with %.1f starting power", event.Name, event.StartingPower)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

// formatStanding creates a Slack message with a single player's placement.
func (s *Notifier) formatStanding(player league.Player, standing league.Standing) slack.Message {
	text := fmt.Sprintf("*%s* has no placement yet.", player.Name)
	if standing.Placement > 0 {
		text = fmt.Sprintf("*%s* is %s with %.1f power", player.Name, standing.String(), player.PowerLevel)
	}
	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	}
	if player.OverallWinRate != league.UnknownWinRate {
		winRate := fmt.Sprintf("Win rate: %.1f%%", player.OverallWinRate*100)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", winRate, true, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard renders the ranked players as a code-block table.
func (s *Notifier) formatLeaderboard(board []league.RankedPlayer) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Draft Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(board) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	tbl := &texttable.TextTable{}
	_ = tbl.SetHeader("#", "Name", "Power", "W%")
	for _, ranked := range board {
		winRate := "-"
		if ranked.Player.OverallWinRate != league.UnknownWinRate {
			winRate = fmt.Sprintf("%.1f%%", ranked.Player.OverallWinRate*100)
		}
		_ = tbl.AddRow(
			strconv.Itoa(ranked.Standing.Placement),
			ranked.Player.Name,
			fmt.Sprintf("%.1f", ranked.Player.PowerLevel),
			winRate,
		)
	}
	table := "```\n" + tbl.Draw() + "\n```"
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", table, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player is not registered.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a registered player matching *%s*.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
