// Package sms implements the outbound SMS sender using the Twilio REST API.
package sms

import (
	"context"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"stencil/config"
	"stencil/internal/domain/service"
	"stencil/internal/errors"
)

// twilioSender is a concrete implementation of the SMSSender interface.
type twilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender is the constructor for twilioSender.
func NewTwilioSender(cfg *config.Config) (service.SMSSender, error) {
	if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" || cfg.Twilio.From == "" {
		return nil, errors.New("twilio credentials must be provided")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.Twilio.AccountSID,
		Password: cfg.Twilio.AuthToken,
	})

	return &twilioSender{
		client: client,
		from:   cfg.Twilio.From,
	}, nil
}

// Send delivers one SMS message to the recipient's E.164 number.
func (t *twilioSender) Send(_ context.Context, msg service.SMSMessage) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(msg.To)
	params.SetBody(msg.Body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return errors.Wrap(err, "failed to send SMS")
	}
	return responseError(resp)
}

// responseError converts an error payload on an accepted API response into
// an error. ErrorMessage is not guaranteed alongside ErrorCode.
func responseError(resp *twilioApi.ApiV2010Message) error {
	if resp.ErrorCode == nil {
		return nil
	}

	message := "no error message"
	if resp.ErrorMessage != nil {
		message = *resp.ErrorMessage
	}

	return errors.Errorf("twilio error %d: %s", *resp.ErrorCode, message)
}
