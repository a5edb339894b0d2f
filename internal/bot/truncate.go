package bot

// MaxReplyLength is the platform's message-length ceiling.
const MaxReplyLength = 2000

const (
	truncatedLength = 1997
	ellipsis        = "..."
)

// Truncate enforces the display ceiling on generated text: responses over
// 2000 characters are cut to 1997 plus an ellipsis, exactly 2000 in total.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxReplyLength {
		return text
	}
	return string(runes[:truncatedLength]) + ellipsis
}
