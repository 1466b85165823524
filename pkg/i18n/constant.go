package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "zh-CN"

const (
	ERROR_INTERNAL        = "error.internal"
	ERROR_NOT_FOUND       = "error.notfound"
	ERROR_INVALIDARGUMENT = "error.invalidargument"
	ERROR_EXIST           = "error.exist"
	ERROR_FORBIDDEN       = "error.forbidden"

	ERROR_CONTACT_NOT_FOUND = "error.contact.notfound"
	ERROR_SESSION_NOT_FOUND = "error.session.notfound"
	ERROR_MESSAGE_NOT_FOUND = "error.message.notfound"
	ERROR_EMOJI_NOT_FOUND   = "error.emoji.notfound"

	ERROR_API_KEY_MISSING   = "error.api.key.missing"
	ERROR_AI_REQUEST_FAILED = "error.ai.request.failed"
	ERROR_AI_EMPTY_RESPONSE = "error.ai.empty.response"
)
