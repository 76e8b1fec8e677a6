// Package router decides how each utterance is answered: deterministic fee
// rules first, trained classifier fallback second.
package router

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"college-chatbot/internal/classifier"
	"college-chatbot/internal/common/errors"
	"college-chatbot/internal/common/logger"
	"college-chatbot/internal/common/metrics"
	"college-chatbot/internal/fees"
	"college-chatbot/internal/intents"
)

// Route labels which path produced a reply.
type Route string

const (
	RouteFee    Route = "fee"
	RouteIntent Route = "intent"
)

const cacheKeyPrefix = "intent:tag:"

// Router owns the read-only inference state for the process lifetime. The
// bundle and corpus are immutable after load, so one Router is safe for
// concurrent sessions.
type Router struct {
	resolver *fees.Resolver
	bundle   *classifier.Bundle
	corpus   *intents.Corpus

	// rand.Rand is not safe for concurrent use; sessions share one Router.
	rngMu sync.Mutex
	rng   *rand.Rand

	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

// Option customizes a Router.
type Option func(*Router)

// WithRand injects the random source used for response selection, making
// replies reproducible in tests.
func WithRand(rng *rand.Rand) Option {
	return func(r *Router) { r.rng = rng }
}

// WithCache enables the prediction cache. Classification is deterministic per
// utterance, so hosted deployments may cache normalized-utterance -> tag.
// A nil client leaves caching off.
func WithCache(client *redis.Client, ttl time.Duration) Option {
	return func(r *Router) {
		r.cache = client
		r.cacheTTL = ttl
	}
}

// New builds a Router from the loaded resolver, bundle and corpus.
func New(resolver *fees.Resolver, bundle *classifier.Bundle, corpus *intents.Corpus, log logger.Logger, opts ...Option) *Router {
	r := &Router{
		resolver: resolver,
		bundle:   bundle,
		corpus:   corpus,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   log.WithFields(map[string]interface{}{"component": "router"}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reply produces a response for one utterance. Fee rules win; otherwise the
// classifier picks an intent and one of its responses is chosen uniformly at
// random. A predicted tag with no intent in the corpus surfaces as an error:
// it means the bundle and corpus do not match, and masking it with a default
// phrase would hide that.
func (r *Router) Reply(ctx context.Context, utterance string) (string, Route, error) {
	start := time.Now()

	if answer, ok := r.resolver.Resolve(utterance); ok {
		r.observe(RouteFee, start)
		return answer, RouteFee, nil
	}

	tag := r.predict(ctx, utterance)
	metrics.ClassifierPredictions.WithLabelValues(tag).Inc()

	intent, ok := r.corpus.ByTag(tag)
	if !ok {
		err := errors.NewBundleCorpusMismatchError(tag)
		metrics.ChatRequestsFailed.WithLabelValues(string(errors.CodeOf(err))).Inc()
		r.logger.Error("predicted tag missing from corpus", map[string]interface{}{
			"tag": tag,
		})
		return "", RouteIntent, err
	}

	r.rngMu.Lock()
	reply := intent.Responses[r.rng.Intn(len(intent.Responses))]
	r.rngMu.Unlock()
	r.observe(RouteIntent, start)
	return reply, RouteIntent, nil
}

// predict returns the classifier tag for an utterance, consulting the cache
// when one is configured.
func (r *Router) predict(ctx context.Context, utterance string) string {
	if r.cache == nil {
		return r.bundle.Classify(utterance)
	}

	key := cacheKeyPrefix + utterance
	if tag, err := r.cache.Get(ctx, key).Result(); err == nil && tag != "" {
		return tag
	}

	tag := r.bundle.Classify(utterance)
	if err := r.cache.Set(ctx, key, tag, r.cacheTTL).Err(); err != nil {
		// Cache failures never affect the reply.
		r.logger.Warn("prediction cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return tag
}

func (r *Router) observe(route Route, start time.Time) {
	metrics.ChatRequestsTotal.WithLabelValues(string(route)).Inc()
	metrics.ChatRequestDuration.WithLabelValues(string(route)).Observe(time.Since(start).Seconds())
}
