package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"advisor-backend/internal/bootstrap"
	"advisor-backend/internal/queue"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	_ = ctx
	_ = params
	_ = optFns
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	_ = ctx
	_ = optFns
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeMailer struct {
	err  error
	sent []string
}

func (f *fakeMailer) SendResetMail(ctx context.Context, email, token string) error {
	_ = ctx
	_ = token
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func resetMailBody(t *testing.T, email, token string) string {
	t.Helper()
	body, err := queue.EncodeMessage(queue.Message{
		Kind:       queue.KindResetMail,
		Email:      email,
		ResetToken: token,
		RequestID:  "req-1",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(body)
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	client := &fakeSQS{}
	mailer := &fakeMailer{}
	app := &bootstrap.App{Mailer: mailer}
	msg := sqstypes.Message{
		MessageId:     aws.String("m1"),
		ReceiptHandle: aws.String("r1"),
		Body:          aws.String(resetMailBody(t, "user@example.com", "tok-1")),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "user@example.com" {
		t.Fatalf("expected one delivery, got %v", mailer.sent)
	}
}

func TestWorkerDoesNotDeleteOnFailure(t *testing.T) {
	client := &fakeSQS{}
	app := &bootstrap.App{Mailer: &fakeMailer{err: errors.New("boom")}}
	msg := sqstypes.Message{
		MessageId:     aws.String("m2"),
		ReceiptHandle: aws.String("r2"),
		Body:          aws.String(resetMailBody(t, "user@example.com", "tok-2")),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnInvalidJSON(t *testing.T) {
	client := &fakeSQS{}
	app := &bootstrap.App{Mailer: &fakeMailer{}}
	msg := sqstypes.Message{
		MessageId:     aws.String("m3"),
		ReceiptHandle: aws.String("r3"),
		Body:          aws.String("{bad-json"),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnMissingToken(t *testing.T) {
	client := &fakeSQS{}
	mailer := &fakeMailer{}
	app := &bootstrap.App{Mailer: mailer}
	body, err := queue.EncodeMessage(queue.Message{Kind: queue.KindResetMail, Email: "user@example.com"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg := sqstypes.Message{
		MessageId:     aws.String("m4"),
		ReceiptHandle: aws.String("r4"),
		Body:          aws.String(string(body)),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no delivery, got %v", mailer.sent)
	}
}
