package notify

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// Dispatcher sends payment-pending reminders through the external
// messaging channel. Implementations are best-effort; callers decide
// whether failure matters.
type Dispatcher interface {
	SendPaymentPending(ctx context.Context, email, phone, name, resumeLink string) error
}

// AWSDispatcher delivers reminders over SES email and, when a phone
// number is present, SNS SMS.
type AWSDispatcher struct {
	ses    *ses.Client
	sns    *sns.Client
	sender string
	logger *zap.Logger
}

// NewAWSDispatcher builds the dispatcher from the ambient AWS credential
// chain.
func NewAWSDispatcher(ctx context.Context, region, sender string, logger *zap.Logger) (*AWSDispatcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AWSDispatcher{
		ses:    ses.NewFromConfig(cfg),
		sns:    sns.NewFromConfig(cfg),
		sender: sender,
		logger: logger,
	}, nil
}

// SendPaymentPending emails the applicant and mirrors the nudge over SMS
// when a phone number is available. The email is the primary channel; an
// SMS failure is logged but does not fail the dispatch.
func (d *AWSDispatcher) SendPaymentPending(ctx context.Context, email, phone, name, resumeLink string) error {
	subject := "Complete your registration payment"
	body := fmt.Sprintf("Hi %s,\n\nYour registration is reserved but the payment is still pending. Resume here: %s\n\nIf you already paid, you can ignore this message.", name, resumeLink)

	_, err := d.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: &d.sender,
		Destination: &sestypes.Destination{
			ToAddresses: []string{email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: &subject},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: &body},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}

	if phone != "" {
		sms := fmt.Sprintf("Hi %s, your registration payment is pending. Resume: %s", name, resumeLink)
		if _, err := d.sns.Publish(ctx, &sns.PublishInput{
			PhoneNumber: &phone,
			Message:     &sms,
		}); err != nil {
			d.logger.Warn("reminder sms failed", zap.Error(err))
		}
	}

	return nil
}
