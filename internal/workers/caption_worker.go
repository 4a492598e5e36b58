package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vocallq/vocallq/internal/services"
)

// CaptionStream is the Redis Stream carrying live caption turns from the
// websocket ingest to the persistence workers.
const CaptionStream = "captions:stream"

// CaptionWorkerPool persists live caption turns and fans each one out to the
// webinar's viewer channel. The socket that produced the turn already ran the
// ownership check, so the worker writes without re-authorizing.
type CaptionWorkerPool struct {
	Redis       *redis.Client
	Transcripts services.TranscriptService
	NumWorkers  int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *CaptionWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Transcripts == nil {
		return errors.New("CaptionWorkerPool missing dependency: Redis/Transcripts must be set")
	}
	if p.Stream == "" {
		p.Stream = CaptionStream
	}
	if p.Group == "" {
		p.Group = "caption-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "cap"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 5
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *CaptionWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *CaptionWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	webinarID := msgStr(msg, "webinar_id")
	text := msgStr(msg, "text")
	if webinarID == "" || text == "" {
		return
	}

	turnOrder, _ := strconv.ParseInt(msgStr(msg, "turn_order"), 10, 64)

	in := services.LiveTurnInput{
		TurnOrder:   turnOrder,
		Text:        text,
		IsFormatted: msgStr(msg, "is_formatted") == "true",
		EndOfTurn:   msgStr(msg, "end_of_turn") == "true",
	}
	if v := msgStr(msg, "end_of_turn_confidence"); v != "" {
		if conf, err := strconv.ParseFloat(v, 64); err == nil {
			in.EndOfTurnConfidence = &conf
		}
	}
	if v := msgStr(msg, "timestamp"); v != "" {
		if ts, err := strconv.ParseFloat(v, 64); err == nil {
			in.Timestamp = ts
		}
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":   msg.ID,
		"webinar_id": webinarID,
		"turn_order": turnOrder,
	})

	turn, err := p.Transcripts.AppendLiveTurn(ctx, webinarID, in)
	if err != nil {
		log.WithError(err).Error("caption turn persist failed")
		return
	}

	payload, err := json.Marshal(map[string]any{
		"type": "caption",
		"turn": turn,
	})
	if err != nil {
		return
	}
	_ = p.Redis.Publish(ctx, "webinar:"+webinarID+":captions", string(payload)).Err()
}
