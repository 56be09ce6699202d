package telegram

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymbot/internal/gymstats/flow"
	"github.com/2beens/gymbot/internal/telemetry/metrics"
	"github.com/2beens/gymbot/internal/telemetry/tracing"

	"github.com/go-redis/redis_rate/v9"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=telegram_test

type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type flowEngine interface {
	Handle(ctx context.Context, in flow.Input) (flow.RenderInstruction, error)
}

type updateDeduplicator interface {
	FirstSeen(ctx context.Context, updateID int) (bool, error)
}

type rateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

const workerQueueSize = 16

type BotParams struct {
	API    botAPI
	Engine flowEngine
	// Dedup and Limiter are optional, both need redis.
	Dedup            updateDeduplicator
	Limiter          rateLimiter
	ActionsPerMinute int
	Workers          int
	PollTimeoutSec   int
	MetricsManager   *metrics.Manager
}

type Bot struct {
	api              botAPI
	engine           flowEngine
	dedup            updateDeduplicator
	limiter          rateLimiter
	actionsPerMinute int
	workers          int
	pollTimeoutSec   int
	metricsManager   *metrics.Manager
}

func NewBot(params BotParams) *Bot {
	if params.Workers <= 0 {
		params.Workers = 1
	}
	if params.PollTimeoutSec <= 0 {
		params.PollTimeoutSec = 60
	}
	return &Bot{
		api:              params.API,
		engine:           params.Engine,
		dedup:            params.Dedup,
		limiter:          params.Limiter,
		actionsPerMinute: params.ActionsPerMinute,
		workers:          params.Workers,
		pollTimeoutSec:   params.PollTimeoutSec,
		metricsManager:   params.MetricsManager,
	}
}

// NewBotAPI connects to the Bot API with a traced HTTP client.
func NewBotAPI(token string, pollTimeoutSec int) (*tgbotapi.BotAPI, error) {
	httpClient := &http.Client{
		// long polling holds the request open for pollTimeoutSec
		Timeout:   time.Duration(pollTimeoutSec)*time.Second + 30*time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
}

// Run long-polls for updates until ctx is done. Each owner is pinned to one
// of the Workers, so updates from one chat are handled in arrival order while
// different chats run concurrently. On shutdown the queued and in-flight
// updates are handled before Run returns.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeoutSec
	updates := b.api.GetUpdatesChan(u)

	// queued updates finish even when ctx is cancelled
	handleCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	queues := make([]chan tgbotapi.Update, b.workers)
	for i := range queues {
		queue := make(chan tgbotapi.Update, workerQueueSize)
		queues[i] = queue
		g.Go(func() error {
			for update := range queue {
				b.HandleUpdate(handleCtx, update)
			}
			return nil
		})
	}
	drain := func() error {
		for _, queue := range queues {
			close(queue)
		}
		return g.Wait()
	}

	log.Infof("telegram bot polling started, workers: %d", b.workers)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Debugln("telegram bot: waiting for queued updates")
			return drain()
		case update, ok := <-updates:
			if !ok {
				return drain()
			}
			queues[workerFor(update, len(queues))] <- update
		}
	}
}

// workerFor maps the update's chat to a worker index. Updates without a
// chat are dropped by HandleUpdate anyway and go to the first worker.
func workerFor(update tgbotapi.Update, workers int) int {
	in, ok := inputFromUpdate(update)
	if !ok {
		return 0
	}
	owner := in.Owner
	if owner < 0 {
		// group chats have negative ids
		owner = -owner
	}
	return int(owner % int64(workers))
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "telegram.handle_update")
	defer span.End()
	span.SetAttributes(attribute.Int("update.id", update.UpdateID))

	in, ok := inputFromUpdate(update)
	if !ok {
		log.Tracef("telegram update %d skipped", update.UpdateID)
		return
	}
	span.SetAttributes(attribute.Int64("owner", in.Owner))

	if b.dedup != nil {
		first, err := b.dedup.FirstSeen(ctx, update.UpdateID)
		switch {
		case err != nil:
			log.Errorf("telegram update %d dedup: %s", update.UpdateID, err)
		case !first:
			log.Debugf("telegram update %d already processed", update.UpdateID)
			if b.metricsManager != nil {
				b.metricsManager.CounterDuplicateUpdates.Inc()
			}
			return
		}
	}

	var callbackID string
	var messageID int
	if cb := update.CallbackQuery; cb != nil {
		callbackID = cb.ID
		messageID = cb.Message.MessageID
	}

	if !b.allow(ctx, in.Owner) {
		if callbackID != "" {
			b.answerCallback(callbackID, throttledText)
		}
		return
	}

	render, err := b.engine.Handle(ctx, in)
	if callbackID != "" {
		b.answerCallback(callbackID, "")
	}
	if err != nil {
		if !flow.IsRecoverable(err) {
			log.Errorf("telegram %s from %d: %s", in.Kind, in.Owner, err)
			span.RecordError(err)
			b.send(tgbotapi.NewMessage(in.Owner, storeFailureText))
			return
		}
		log.Debugf("telegram %s from %d rejected: %s", in.Kind, in.Owner, err)
	}
	if render.Unchanged {
		return
	}

	b.send(renderMessage(in.Owner, messageID, render))
}

func (b *Bot) allow(ctx context.Context, owner int64) bool {
	if b.limiter == nil || b.actionsPerMinute <= 0 {
		return true
	}

	res, err := b.limiter.Allow(
		ctx,
		"gymbot:actions:"+strconv.FormatInt(owner, 10),
		redis_rate.PerMinute(b.actionsPerMinute),
	)
	if err != nil {
		log.Errorf("rate limit check for %d: %s", owner, err)
		return true
	}
	if res.Allowed > 0 {
		return true
	}

	log.Debugf("owner %d throttled, retry after %s", owner, res.RetryAfter)
	if b.metricsManager != nil {
		b.metricsManager.CounterRateLimitedRequests.Inc()
	}
	return false
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		if isNotModified(err) {
			log.Tracef("telegram send: %s", err)
			return
		}
		log.Errorf("telegram send: %s", err)
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Errorf("telegram answer callback: %s", err)
	}
}
