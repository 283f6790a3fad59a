// Copyright 2016 Florin Pățan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command rolebot
//
// This is a Discord bot that turns messages into reaction role boards:
// members react with an emoji to get the role listed next to it and
// remove the reaction to drop it again.
//
// To run this you need to set the ` ROLEBOT_DISCORD_TOKEN ` environment
// variable with the Discord bot token. Everything else has a default, see
// the config package.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/gobridge/rolebot/bot"
	"github.com/gobridge/rolebot/config"
	"github.com/gobridge/rolebot/handlers"
	"github.com/gobridge/rolebot/health"
	"github.com/gobridge/rolebot/journal"
	"github.com/gobridge/rolebot/notify"
	"github.com/gobridge/rolebot/reactionrole"
	"github.com/gobridge/rolebot/telemetry"
)

var botVersion = "HEAD"

const (
	reactionRoleCommand = "reaction-role"
	boardsCommand       = "reaction-role-boards"
	boardsLimit         = 10
)

func main() {
	configPath := flag.String("config", os.Getenv("ROLEBOT_CONFIG"), "path to a YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	logf := log.Printf
	debugf := func(string, ...interface{}) {}
	if cfg.DevMode {
		debugf = log.Printf
	}

	shutdown, err := telemetry.Init(cfg.Name, botVersion, telemetry.Config{
		Exporter: cfg.Telemetry.Exporter,
		Endpoint: cfg.Telemetry.Endpoint,
		Insecure: cfg.Telemetry.Insecure,
	})
	if err != nil {
		log.Fatal(err)
	}

	store, err := journal.Open(ctx, journal.Config{
		Driver:  cfg.Journal.Driver,
		DSN:     cfg.Journal.DSN,
		Project: cfg.Journal.Project,
	})
	if err != nil {
		log.Fatal(err)
	}

	notifier := notify.New(cfg.Slack.Token, cfg.Slack.Channel)

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatal(err)
	}

	b := bot.New(session, bot.Options{
		Name:    cfg.Name,
		Version: botVersion,
		Prefix:  cfg.Command.Prefix,
		DevMode: cfg.DevMode,
		Logf:    logf,
	})

	publish := handlers.ReactionRole(reactionrole.NewPublisher(b), handlers.ReactionRoleOptions{
		Usage:    cfg.Command.Prefix + reactionRoleCommand,
		Journal:  store,
		Notifier: notifier,
		Logf:     logf,
	})
	boards := handlers.ReactionRoleBoards(store, boardsLimit, logf)

	b.Handle(handlers.ProcessLinear(
		handlers.BotVersion("version", botVersion),
		handlers.Command(reactionRoleCommand, handlers.GuildOnly(handlers.RequireRole(b, cfg.Command.Role, logf, publish))),
		handlers.Command(boardsCommand, handlers.GuildOnly(boards)),
	))
	sub := b.Subscribe(handlers.ReactionRoles(reactionrole.NewReconciler(b, logf), debugf))

	if err := b.Open(); err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           health.NewRouter(botVersion, b.Ready, store),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	if err := notifier.Notify(ctx, "Deployed version: "+botVersion); err != nil {
		logf("notifying deployment: %v\n", err)
	}
	log.Printf("%s %s is running, press CTRL-C to exit\n", cfg.Name, botVersion)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sub.Unsubscribe()
	if err := srv.Shutdown(ctx); err != nil {
		logf("stopping http server: %v\n", err)
	}
	if err := b.Close(); err != nil {
		logf("closing discord session: %v\n", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logf("closing journal: %v\n", err)
		}
	}
	if err := shutdown(ctx); err != nil {
		logf("stopping telemetry: %v\n", err)
	}
}
