package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/google/uuid"
)

const sesDefaultRegion = "us-east-1"

// SESTransport delivers email through Amazon SES.
type SESTransport struct {
	client *sesv2.Client
}

// NewSESTransport constructs an SES-backed transport.
func NewSESTransport(ctx context.Context, region string) (*SESTransport, error) {
	if strings.TrimSpace(region) == "" {
		region = sesDefaultRegion
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESTransport{client: sesv2.NewFromConfig(cfg)}, nil
}

// Send delivers the message and returns the SES message id.
func (t *SESTransport) Send(ctx context.Context, msg Message) (string, error) {
	out, err := t.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(msg.Subject)},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(msg.HTML)},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ses send email: %w", err)
	}
	messageID := aws.ToString(out.MessageId)
	if messageID == "" {
		messageID = uuid.NewString()
	}
	return messageID, nil
}

var _ Transport = (*SESTransport)(nil)
