package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"hrms-portal/config"
)

type fakeAPI struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeAPI) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &twilioApi.ApiV2010Message{}, nil
}

func TestTwilioNotifierBuildsMessage(t *testing.T) {
	api := &fakeAPI{}
	n := &TwilioNotifier{api: api, from: "+15550000000"}

	require.NoError(t, n.Send(context.Background(), "+6281234567890", "Your code is 123456"))
	require.NotNil(t, api.params)
	assert.Equal(t, "+6281234567890", *api.params.To)
	assert.Equal(t, "+15550000000", *api.params.From)
	assert.Equal(t, "Your code is 123456", *api.params.Body)
}

func TestTwilioNotifierWrapsFailure(t *testing.T) {
	cause := errors.New("20003 authenticate")
	n := &TwilioNotifier{api: &fakeAPI{err: cause}, from: "+15550000000"}

	err := n.Send(context.Background(), "+6281234567890", "hi")
	assert.ErrorIs(t, err, cause)
}

func TestTwilioNotifierHonoursCancelledContext(t *testing.T) {
	api := &fakeAPI{}
	n := &TwilioNotifier{api: api}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Send(ctx, "+6281234567890", "hi"), context.Canceled)
	assert.Nil(t, api.params)
}

func TestNewSelectsDriver(t *testing.T) {
	n, err := New(&config.AppConfig{NotifierDriver: config.NotifierDriverLog})
	require.NoError(t, err)
	assert.IsType(t, LogNotifier{}, n)

	n, err = New(&config.AppConfig{
		NotifierDriver:   config.NotifierDriverTwilio,
		TwilioAccountSID: "ACxxxxxxxx",
		TwilioAuthToken:  "token",
		TwilioFromPhone:  "+15550000000",
	})
	require.NoError(t, err)
	assert.IsType(t, &TwilioNotifier{}, n)

	_, err = New(&config.AppConfig{NotifierDriver: "carrier-pigeon"})
	assert.Error(t, err)
}
