package apierrors

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"github.com/drashti-2005/task-manager-sub000/pkg/translator"
)

// Envelope is the uniform error body: {success:false, message, error?}.
// Detail carries the underlying error text and is only populated outside
// production.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// Error implements the error interface for Envelope.
func (e Envelope) Error() string {
	return fmt.Sprintf("Message: %s", e.Message)
}

// CreateError builds an envelope with a translated message.
func CreateError(msgKey string, lang string) Envelope {
	return Envelope{Message: GetTransErrorMsg(msgKey, lang)}
}

var hideDetail bool

// SetProductionMode suppresses raw error detail in envelopes. Called once
// from the composition root before any request is served.
func SetProductionMode(enabled bool) {
	hideDetail = enabled
}

// CreateErrorWithDetail attaches the raw error text for non-production use.
func CreateErrorWithDetail(msgKey string, lang string, detail error) Envelope {
	env := CreateError(msgKey, lang)
	if detail != nil && !hideDetail {
		env.Detail = detail.Error()
	}
	return env
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	l := i18n.NewLocalizer(translator.Translator, lang, "en")
	m := i18n.LocalizeConfig{}
	m.MessageID = msgKey
	msg, err := l.Localize(&m)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
