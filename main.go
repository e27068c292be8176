package main

import (
	"context"
	"errors"
	"lightbot/internal/adapters/handler"
	"lightbot/internal/adapters/publisher"
	"lightbot/internal/adapters/sender"
	"lightbot/internal/adapters/server"
	"lightbot/internal/adapters/webhook"
	"lightbot/internal/core/domain/command"
	"lightbot/internal/core/port"
	"lightbot/internal/core/service"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting lightbot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("lightbot")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("could not read config file")
		}
		log.Warn().Msg("no config file found, using defaults and environment")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hook, s := newPlatform()

	publishers := newPublishers(ctx)
	state := service.NewDeviceState(publishers...)

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewTurnOn(state, s, "turn_on"))
	commandRegistry.Register(command.NewTurnOff(state, s, "turn_off"))
	commandRegistry.RegisterFallback(command.NewUnknown(s, "unknown"))

	allowlist, err := service.NewAllowlist(s)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing sender allowlist")
	}

	handlerTimeout := mustDuration("handler.timeout")
	commandHandler := handler.NewCommand(commandRegistry, allowlist, handlerTimeout)

	srv := server.New(server.Config{
		ReadTimeout:  mustDuration("server.read_timeout"),
		WriteTimeout: mustDuration("server.write_timeout"),
	}, hook, commandHandler, state)

	go func() {
		err := srv.Start(viper.GetString("server.address"))
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		log.Error().Err(err).Msg("failed to stop http server cleanly")
	}

	log.Info().Msg("lightbot stopped")
}

func setDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("bot.platform", "line")
	viper.SetDefault("server.address", ":5000")
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("handler.timeout", "10s")
	viper.SetDefault("line.channel_access_token", "")
	viper.SetDefault("line.channel_secret", "")
	viper.SetDefault("line.api_endpoint", "")
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.secret_token", "")
	viper.SetDefault("telegram.server_url", "")
	viper.SetDefault("auth.allowed_users", []string{})
	viper.SetDefault("mqtt.mode", "off")
	viper.SetDefault("mqtt.listen_address", ":1883")
	viper.SetDefault("mqtt.broker_url", []string{})
	viper.SetDefault("mqtt.client_id", "lightbot")
	viper.SetDefault("mqtt.topic", "esp32/state")
	viper.SetDefault("mqtt.qos", 0)
	viper.SetDefault("mqtt.publish_timeout", "2s")
}

func newPlatform() (port.Webhook, port.TextSender) {
	switch platform := viper.GetString("bot.platform"); platform {
	case "line":
		token := mustString("line.channel_access_token")
		secret := mustString("line.channel_secret")

		var opts []messaging_api.MessagingApiAPIOption
		if endpoint := viper.GetString("line.api_endpoint"); endpoint != "" {
			opts = append(opts, messaging_api.WithEndpoint(endpoint))
		}

		api, err := messaging_api.NewMessagingApiAPI(token, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed initializing line messaging api")
		}

		return webhook.NewLine(secret), sender.NewLineSender(api)
	case "telegram":
		token := mustString("telegram.bot_token")
		secret := mustString("telegram.secret_token")

		opts := []bot.Option{bot.WithSkipGetMe()}
		if serverURL := viper.GetString("telegram.server_url"); serverURL != "" {
			opts = append(opts, bot.WithServerURL(serverURL))
		}

		b, err := bot.New(token, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed initializing telegram bot")
		}

		return webhook.NewTelegram(secret), sender.NewTelegram(b)
	default:
		log.Fatal().Str("platform", platform).Msg("unsupported messaging platform")
		return nil, nil
	}
}

func newPublishers(ctx context.Context) []port.StatePublisher {
	topic := viper.GetString("mqtt.topic")

	qos := viper.GetUint("mqtt.qos")
	if qos > 2 {
		log.Fatal().Uint("qos", qos).Msg("invalid mqtt qos in config")
	}

	switch mode := viper.GetString("mqtt.mode"); mode {
	case "off":
		return nil
	case "embedded":
		broker, err := publisher.NewEmbeddedBroker()
		if err != nil {
			log.Fatal().Err(err).Msg("failed initializing embedded mqtt broker")
		}

		err = publisher.ServeEmbeddedBroker(broker, viper.GetString("mqtt.listen_address"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed starting embedded mqtt broker")
		}

		go func() {
			<-ctx.Done()
			err := publisher.StopEmbeddedBroker(broker)
			if err != nil {
				log.Warn().Err(err).Msg("failed to stop embedded mqtt broker cleanly")
			}
		}()

		return []port.StatePublisher{publisher.NewMochi(broker, topic, byte(qos))}
	case "client":
		cm, err := publisher.Connect(ctx, viper.GetStringSlice("mqtt.broker_url"), viper.GetString("mqtt.client_id"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed initializing mqtt client")
		}

		return []port.StatePublisher{publisher.NewPaho(cm, topic, byte(qos), mustDuration("mqtt.publish_timeout"))}
	default:
		log.Fatal().Str("mode", mode).Msg("unsupported mqtt mode")
		return nil
	}
}

func mustString(key string) string {
	value := viper.GetString(key)
	if value == "" {
		log.Fatal().Str("key", key).Msg("missing required config value")
	}

	return value
}

func mustDuration(key string) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		log.Fatal().Err(err).Str("key", key).Msg("invalid duration in config")
	}

	return d
}
