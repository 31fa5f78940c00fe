package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"joltshark-go/internal/market"
	"joltshark-go/internal/metrics"
)

const (
	binanceHandshakeTimeout = 10 * time.Second
	binanceReadTimeout      = 30 * time.Second
	binanceWriteTimeout     = 5 * time.Second
	binancePingEvery        = 15 * time.Second
	binanceMinBackoff       = time.Second
	binanceMaxBackoff       = 30 * time.Second
	binanceReadLimit        = 1 << 20
)

// binanceEnvelope is one message of the combined trade stream.
type binanceEnvelope struct {
	Stream string `json:"stream"`
	Data   struct {
		Price        string `json:"p"`
		Quantity     string `json:"q"`
		TradeTime    int64  `json:"T"`
		IsBuyerMaker bool   `json:"m"`
	} `json:"data"`
}

var errEmptyStream = errors.New("binance message without stream name")

// decodeBinanceTrade turns a raw combined-stream message into a tick. The
// aggressor side is +1 for buys and -1 when the buyer was the maker.
func decodeBinanceTrade(message []byte) (market.Tick, error) {
	var env binanceEnvelope
	if err := json.Unmarshal(message, &env); err != nil {
		return market.Tick{}, fmt.Errorf("decode message: %w", err)
	}
	if env.Stream == "" {
		return market.Tick{}, errEmptyStream
	}
	px, err := strconv.ParseFloat(env.Data.Price, 64)
	if err != nil {
		return market.Tick{}, fmt.Errorf("price %q: %w", env.Data.Price, err)
	}
	qty, err := strconv.ParseFloat(env.Data.Quantity, 64)
	if err != nil {
		return market.Tick{}, fmt.Errorf("quantity %q: %w", env.Data.Quantity, err)
	}
	side := 1
	if env.Data.IsBuyerMaker {
		side = -1
	}
	return market.Tick{
		Symbol: parseBinanceSymbol(env.Stream),
		Price:  px,
		Size:   qty,
		Side:   side,
		Ts:     time.UnixMilli(env.Data.TradeTime),
	}, nil
}

// nextBackoff grows the reconnect delay by 1.8x up to binanceMaxBackoff.
func nextBackoff(d time.Duration) time.Duration {
	next := d * 18 / 10
	if next > binanceMaxBackoff {
		return binanceMaxBackoff
	}
	return next
}

func (f *Feed) runBinance(ctx context.Context, out chan<- market.Tick) error {
	symbols := f.snapshotSymbols()
	if len(symbols) == 0 {
		return fmt.Errorf("binance feed requires at least one symbol")
	}
	url := binanceStreamURL(f.binanceURL, symbols)

	backoff := binanceMinBackoff
	for attempt := 1; ; attempt++ {
		err := f.streamBinance(ctx, url, out)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}
		f.log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msg("binance feed disconnected, retrying")
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff = nextBackoff(backoff)
	}
}

func (f *Feed) streamBinance(ctx context.Context, url string, out chan<- market.Tick) error {
	dialer := websocket.Dialer{HandshakeTimeout: binanceHandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	f.log.Info().Str("provider", ProviderBinance).Str("url", url).Msg("connected market data feed")

	conn.SetReadLimit(binanceReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(binanceReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(binanceReadTimeout))
	})

	keepAliveCtx, stop := context.WithCancel(ctx)
	defer stop()
	go f.keepAlive(keepAliveCtx, conn)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		tick, err := decodeBinanceTrade(message)
		if err != nil {
			f.log.Warn().Err(err).Msg("skipping binance message")
			continue
		}
		select {
		case out <- tick:
			metrics.TicksTotal.WithLabelValues(tick.Symbol).Inc()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// keepAlive pings conn until ctx ends, then closes it so a blocked read returns.
func (f *Feed) keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(binancePingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(binanceWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				f.log.Warn().Err(err).Msg("binance ping failed")
				return
			}
		case <-ctx.Done():
			conn.Close()
			return
		}
	}
}

func binanceStreamURL(base string, symbols []string) string {
	streams := make([]string, len(symbols))
	for i, sym := range symbols {
		streams[i] = strings.ToLower(sym) + "@trade"
	}
	return base + "?streams=" + strings.Join(streams, "/")
}

func parseBinanceSymbol(stream string) string {
	sym, _, _ := strings.Cut(stream, "@")
	if sym == "" {
		return strings.ToUpper(stream)
	}
	return strings.ToUpper(sym)
}
