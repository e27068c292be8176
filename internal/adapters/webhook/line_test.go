package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"lightbot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

const lineBatch = `{
  "destination": "Ubot",
  "events": [
    {
      "type": "message",
      "mode": "active",
      "timestamp": 1700000000000,
      "source": {"type": "user", "userId": "U1"},
      "webhookEventId": "01HEVENT1",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "token-1",
      "message": {"type": "text", "id": "100", "quoteToken": "q1", "text": "TURN_ON"}
    },
    {
      "type": "follow",
      "mode": "active",
      "timestamp": 1700000000001,
      "source": {"type": "user", "userId": "U2"},
      "webhookEventId": "01HEVENT2",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "token-2",
      "follow": {"isUnblocked": false}
    },
    {
      "type": "message",
      "mode": "active",
      "timestamp": 1700000000002,
      "source": {"type": "user", "userId": "U1"},
      "webhookEventId": "01HEVENT3",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "token-3",
      "message": {"type": "sticker", "id": "101", "quoteToken": "q3", "packageId": "1", "stickerId": "1", "stickerResourceType": "STATIC"}
    },
    {
      "type": "message",
      "mode": "active",
      "timestamp": 1700000000003,
      "source": {"type": "group", "groupId": "G1", "userId": "U3"},
      "webhookEventId": "01HEVENT4",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "token-4",
      "message": {"type": "text", "id": "102", "quoteToken": "q4", "text": "hello"}
    }
  ]
}`

func TestLine_VerifySignature(t *testing.T) {
	body := []byte(lineBatch)
	l := NewLine("channel-secret")

	tests := []struct {
		name      string
		signature string
		want      bool
	}{
		{name: "valid signature", signature: sign("channel-secret", body), want: true},
		{name: "signed with other secret", signature: sign("other-secret", body), want: false},
		{name: "empty signature", signature: "", want: false},
		{name: "garbage signature", signature: "not-base64!", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, l.VerifySignature(body, tc.signature))
		})
	}
}

func TestLine_VerifySignatureTamperedBody(t *testing.T) {
	l := NewLine("channel-secret")
	signature := sign("channel-secret", []byte(lineBatch))

	assert.False(t, l.VerifySignature([]byte(lineBatch+" "), signature))
}

func TestLine_SignatureHeader(t *testing.T) {
	assert.Equal(t, "X-Line-Signature", NewLine("s").SignatureHeader())
}

func TestLine_ParseEvents(t *testing.T) {
	messages, err := NewLine("channel-secret").ParseEvents([]byte(lineBatch))
	require.NoError(t, err)

	assert.Equal(t, []domain.Message{
		{ReplyToken: "token-1", EventID: "01HEVENT1", UserID: "U1", Text: "TURN_ON"},
		{ReplyToken: "token-4", EventID: "01HEVENT4", UserID: "U3", Text: "hello"},
	}, messages)
}

func TestLine_ParseEventsEmpty(t *testing.T) {
	messages, err := NewLine("channel-secret").ParseEvents([]byte(`{"destination":"Ubot","events":[]}`))
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestLine_ParseEventsMalformed(t *testing.T) {
	_, err := NewLine("channel-secret").ParseEvents([]byte(`{"events": [`))
	require.ErrorIs(t, err, domain.ErrMalformedPayload)
}
