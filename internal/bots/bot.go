// Package bots contains the bot interface, the stdio protocol loop and
// a few ready-made strategies.
package bots

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"gomori/engine"
)

// Bot is a strategy for playing one side of a game. A single Bot plays
// many games in sequence; NewGame resets any per-game state.
type Bot interface {
	NewGame(color engine.Color)
	PlayFirstTurn(cards [5]engine.Card) engine.Card
	PlayTurn(cards [5]engine.Card, fields []engine.Field, cardsWonByOpponent engine.CardSet) engine.PlayTurnResponse
}

// Run speaks the judge protocol on stdin/stdout until EOF or a Bye
// request. Stdout carries exactly one JSON response line per request;
// all logging goes to stderr.
func Run(bot Bot) error {
	return run(bot, os.Stdin, os.Stdout)
}

func run(bot Bot, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	writer := bufio.NewWriter(out)

	for scanner.Scan() {
		var req engine.Request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			return fmt.Errorf("decode request: %w", err)
		}

		var response any
		switch req.Type {
		case engine.RequestNewGame:
			bot.NewGame(req.Color)
			response = engine.Okay{}
		case engine.RequestPlayFirstTurn:
			response = bot.PlayFirstTurn(handFromCards(req.Cards))
		case engine.RequestPlayTurn:
			var wonByOpponent engine.CardSet
			for _, card := range req.CardsWonByOpponent {
				wonByOpponent = wonByOpponent.Insert(card)
			}
			action := bot.PlayTurn(handFromCards(req.Cards), req.Fields, wonByOpponent)
			if action == nil {
				action = engine.PlayTurnResponse{}
			}
			response = action
		case engine.RequestBye:
			return nil
		default:
			return fmt.Errorf("unknown request type %q", req.Type)
		}

		data, err := json.Marshal(response)
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		if _, err := writer.Write(append(data, '\n')); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func handFromCards(cards []engine.Card) [5]engine.Card {
	var hand [5]engine.Card
	copy(hand[:], cards)
	return hand
}

// InitLogging configures the process-wide logger for a bot binary. Logs
// go to stderr so they do not interfere with the protocol on stdout.
func InitLogging(level string) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}
