package notifier

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"hrms-portal/config"
	util "hrms-portal/pkg/utils"
)

// Notifier delivers a text message to a phone number.
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// New picks the delivery channel configured by NOTIFIER_DRIVER.
func New(cfg *config.AppConfig) (Notifier, error) {
	switch cfg.NotifierDriver {
	case config.NotifierDriverTwilio:
		return NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromPhone), nil
	case config.NotifierDriverLog, "":
		return LogNotifier{}, nil
	default:
		return nil, fmt.Errorf("unknown notifier driver %q", cfg.NotifierDriver)
	}
}

// LogNotifier writes messages to the application log instead of sending them.
// It is meant for local development only: the log line contains the code.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, phone, message string) error {
	util.Logger.WithFields(logrus.Fields{
		"phone":   phone,
		"message": message,
	}).Info("SMS delivery (log driver)")
	return nil
}

// messageCreator is the subset of the Twilio REST API used for sending.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioNotifier struct {
	api  messageCreator
	from string
}

func NewTwilioNotifier(accountSID, authToken, from string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: client.Api, from: from}
}

func (n *TwilioNotifier) Send(ctx context.Context, phone, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(n.from)
	params.SetBody(message)

	if _, err := n.api.CreateMessage(params); err != nil {
		util.Logger.WithError(err).Errorf("Failed to send SMS to %s via Twilio", util.MaskPhone(phone))
		return fmt.Errorf("failed to send sms via twilio: %w", err)
	}
	return nil
}
