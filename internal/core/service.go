package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReplyPrefix is prepended to the original subject of every reply
const ReplyPrefix = "Re: "

// MessageClassifier turns a message into a classification, nil when unavailable
type MessageClassifier interface {
	Classify(ctx context.Context, msg *IncomingMessage) *ClassificationResult
}

// AutoReplyService runs one fetch, classify, reply cycle
type AutoReplyService struct {
	reader     MailReader
	classifier MessageClassifier
	selector   *ReplySelector
	sender     MailSender
	logger     *zap.Logger
}

// NewAutoReplyService creates a new auto-reply service
func NewAutoReplyService(
	reader MailReader,
	classifier MessageClassifier,
	selector *ReplySelector,
	sender MailSender,
	logger *zap.Logger,
) *AutoReplyService {
	return &AutoReplyService{
		reader:     reader,
		classifier: classifier,
		selector:   selector,
		sender:     sender,
		logger:     logger,
	}
}

// Run processes at most one unread message. Recoverable failures are logged and
// recorded in the report; they never abort the run.
func (s *AutoReplyService) Run(ctx context.Context) *RunReport {
	report := &RunReport{RunID: uuid.NewString()}
	logger := s.logger.With(zap.String("run_id", report.RunID))
	report.enter(StateStart)

	logger.Debug("Overlapping runs may race on the seen flag and process a message twice")

	msg, err := s.reader.FetchLatestUnread(ctx)
	if err != nil {
		logger.Error("Failed to fetch unread message", zap.Error(err))
		report.enter(StateDone)
		return report
	}
	if msg == nil {
		logger.Info("No unread messages")
		report.enter(StateDone)
		return report
	}
	report.enter(StateFetched)

	logger = logger.With(zap.String("sender", msg.SenderAddress))
	logger.Info("Processing message",
		zap.String("subject", msg.Subject),
		zap.String("message_id", msg.MessageID),
		zap.Uint32("uid", msg.UID))

	classification := s.classifier.Classify(ctx, msg)
	if classification == nil {
		report.ClassificationFailed = true
		report.enter(StateClassificationFailed)
		logger.Warn("Using safe default reply")
	} else {
		report.enter(StateClassified)
	}

	report.Recipient = msg.SenderAddress
	report.Subject = ReplyPrefix + msg.Subject
	report.Reply = s.selector.Select(classification)

	if err := s.sender.Send(ctx, report.Recipient, report.Subject, report.Reply); err != nil {
		report.SendError = err
		logger.Error("Failed to send reply", zap.Error(err))
	} else {
		report.Sent = true
		logger.Info("Reply sent", zap.String("subject", report.Subject))
	}
	report.enter(StateReplied)
	report.enter(StateDone)

	return report
}
