package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vocallq/vocallq/internal/services"
)

// TranscriptionWorkerPool drains queued recordings from the transcription job
// stream and runs the batch pipeline for each. Status transitions are
// published per webinar so connected dashboards can follow along.
type TranscriptionWorkerPool struct {
	Redis       *redis.Client
	Transcripts services.TranscriptService
	NumWorkers  int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *TranscriptionWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Transcripts == nil {
		return errors.New("TranscriptionWorkerPool missing dependency: Redis/Transcripts must be set")
	}
	if p.Stream == "" {
		p.Stream = services.TranscriptionJobStream
	}
	if p.Group == "" {
		p.Group = "transcription-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "t"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
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

func (p *TranscriptionWorkerPool) runConsumer(ctx context.Context, consumer string) {
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
			Count:    1,
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

func msgStr(msg redis.XMessage, k string) string {
	v, ok := msg.Values[k]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (p *TranscriptionWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	job := services.TranscriptionJob{
		TranscriptID: msgStr(msg, "transcript_id"),
		WebinarID:    msgStr(msg, "webinar_id"),
		RecordingURL: msgStr(msg, "recording_url"),
		Language:     msgStr(msg, "language"),
	}
	if job.TranscriptID == "" || job.WebinarID == "" || job.RecordingURL == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":      msg.ID,
		"transcript_id": job.TranscriptID,
		"webinar_id":    job.WebinarID,
	})

	statusCh := "webinar:" + job.WebinarID + ":transcription"
	_ = p.Redis.Publish(ctx, statusCh, `{"type":"status","status":"processing"}`).Err()

	start := time.Now()
	if err := p.Transcripts.RunTranscription(ctx, job); err != nil {
		log.WithError(err).Error("transcription job failed")
		_ = p.Redis.Publish(ctx, statusCh, `{"type":"status","status":"failed"}`).Err()
		return
	}

	log.WithField("elapsed_ms", time.Since(start).Milliseconds()).Info("transcription job completed")
	_ = p.Redis.Publish(ctx, statusCh, `{"type":"status","status":"completed"}`).Err()
}
