package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"quincho/internal/config"
	"quincho/internal/logger"
	"quincho/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "notifications"
	failedQueueKey = "notifications:failed"
	enabledKey     = "notifications:enabled"
)

// Job is a queued admin notification. Delivery is simulated email:
// the job is composed and sent through SMTP, but nothing in the
// booking flow waits on it.
type Job struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis      *redis.Client
	adminEmail string
	from       string
	fromName   string
	smtpHost   string
	smtpPort   string
	smtpUser   string
	smtpPass   string
}

func New(cfg *config.Config) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		}),
		adminEmail: cfg.AdminEmail,
		from:       cfg.EmailFrom,
		fromName:   cfg.EmailFromName,
		smtpHost:   cfg.SMTPHost,
		smtpPort:   cfg.SMTPPort,
		smtpUser:   cfg.SMTPUser,
		smtpPass:   cfg.SMTPPass,
	}
}

// Enabled reports whether admin notifications are switched on. The
// flag lives in redis so every instance sees the same state; a
// missing key means enabled.
func (s *Service) Enabled(ctx context.Context) bool {
	val, err := s.redis.Get(ctx, enabledKey).Result()
	if err != nil {
		return true
	}
	return val != "0"
}

func (s *Service) SetEnabled(ctx context.Context, enabled bool) error {
	val := "1"
	if !enabled {
		val = "0"
	}
	return s.redis.Set(ctx, enabledKey, val, 0).Err()
}

// NotifyAdmin queues a notification for the configured admin address.
// Failures are logged and counted, never propagated; bookings must
// not fail because the queue is down.
func (s *Service) NotifyAdmin(ctx context.Context, notifType, subject, body string) {
	if !s.Enabled(ctx) {
		metrics.RecordNotification(notifType, "skipped")
		return
	}

	job := Job{
		Type:    notifType,
		To:      s.adminEmail,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		metrics.RecordNotification(notifType, "failed")
		return
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue %s notification: %v", notifType, err)
		metrics.RecordNotification(notifType, "failed")
		return
	}

	metrics.RecordNotification(notifType, "queued")
	metrics.NotificationQueueLength.Set(float64(s.QueueLength(ctx)))
	logger.Infof("Notification queued: %s (%s)", subject, notifType)
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	metrics.NotificationQueueLength.Set(float64(s.QueueLength(ctx)))

	job.Tries++
	logger.Infof("Sending notification to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send notification to %s: %v", job.To, err)

		if job.Tries < 3 {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying notification to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Notification to %s failed after 3 attempts", job.To)
			metrics.RecordNotification(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordNotification(job.Type, "sent")
	logger.Infof("Notification sent to %s", job.To)
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Notification moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
