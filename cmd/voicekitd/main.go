// voicekitd runs the voice assistant bridge: it hosts the conversation
// engine, the remote NLU chain, and the websocket feed the courier web
// app connects to.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/acetransit/voicekit/internal/config"
	"github.com/acetransit/voicekit/internal/log"
	"github.com/acetransit/voicekit/pkg/assistant"
	"github.com/acetransit/voicekit/pkg/nlu"
	"github.com/acetransit/voicekit/pkg/session"
	"github.com/acetransit/voicekit/pkg/web"
)

func main() {
	log.Init(config.LogLevel())
	ctx := context.Background()

	opts := []assistant.Option{
		assistant.WithResolver(buildResolver(ctx)),
		assistant.WithStore(buildStore(ctx)),
	}

	server := web.NewServer(config.Port(), opts...)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("voicekitd starting", "port", config.Port())
	if err := server.Start(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// buildResolver assembles the NLU chain from whatever providers are
// configured. The offline heuristic is always the last link.
func buildResolver(ctx context.Context) nlu.Resolver {
	var resolvers []nlu.Resolver

	if key := config.GeminiAPIKey(); key != "" {
		r, err := nlu.NewGeminiResolver(ctx, key)
		if err != nil {
			log.Warn("gemini resolver unavailable", "error", err)
		} else {
			resolvers = append(resolvers, r)
		}
	}
	if key := config.OpenAIAPIKey(); key != "" {
		r, err := nlu.NewOpenAIResolver(key)
		if err != nil {
			log.Warn("openai resolver unavailable", "error", err)
		} else {
			resolvers = append(resolvers, r)
		}
	}
	resolvers = append(resolvers, nlu.NewOfflineResolver())

	log.Info("nlu chain assembled", "providers", len(resolvers))
	return nlu.NewChain(resolvers...)
}

// buildStore prefers Redis so sessions survive restarts, falling back to
// process memory when Redis is disabled or unreachable.
func buildStore(ctx context.Context) session.Store {
	if os.Getenv("VOICEKIT_NO_REDIS") == "1" {
		log.Info("session store: memory")
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, using memory sessions", "addr", config.RedisAddr(), "error", err)
		return session.NewMemoryStore()
	}

	log.Info("session store: redis", "addr", config.RedisAddr())
	return session.NewRedisStore(client, session.DefaultTTL)
}
