package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"advisor-backend/internal/bootstrap"
	"advisor-backend/internal/mail"
	"advisor-backend/internal/queue"
	"advisor-backend/internal/shared/metrics"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrUnknownKind indicates a message of a kind this worker does not handle.
type ErrUnknownKind struct {
	Meta MessageMeta
	Kind string
}

func (e ErrUnknownKind) Error() string { return "unknown message kind: " + e.Kind }

// ErrMissingFields indicates a reset mail message without email or token.
type ErrMissingFields struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingFields) Error() string { return "missing email or reset token" }

// ErrDeliver indicates mail delivery failed after successful parsing.
type ErrDeliver struct {
	Email     string
	RequestID string
	Err       error
}

func (e ErrDeliver) Error() string {
	if e.Err == nil {
		return "deliver reset mail"
	}
	return "deliver reset mail: " + e.Err.Error()
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if msg.Kind != queue.KindResetMail {
		return msg, meta, ErrUnknownKind{Meta: meta, Kind: msg.Kind}
	}
	if strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.ResetToken) == "" {
		return msg, meta, ErrMissingFields{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded message in the context for reuse.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// HandleMessage parses, validates, and delivers a reset mail payload.
func HandleMessage(ctx context.Context, app *bootstrap.App, body string) error {
	if app == nil || app.Mailer == nil {
		return errors.New("mailer not configured")
	}

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		msg, _, err = ParseMessage(body)
		if err != nil {
			return err
		}
	}

	if strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.ResetToken) == "" {
		return ErrMissingFields{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}

	ctxWithRequest := mail.WithRequestID(ctx, msg.RequestID)
	if err := app.Mailer.SendResetMail(ctxWithRequest, msg.Email, msg.ResetToken); err != nil {
		metrics.IncResetMailsFailed()
		return ErrDeliver{Email: msg.Email, RequestID: msg.RequestID, Err: err}
	}
	metrics.IncResetMailsSent()
	return nil
}
