package event

import "strings"

// contentRule maps content keywords to a category. Rules are evaluated in
// order and the first rule with any matching keyword wins, so precedence is
// explicit and testable.
type contentRule struct {
	keywords []string
	category Category
}

// contentRules categorizes a record by substring search over its serialized
// text. Order matters: communication outranks document, document outranks
// system, system outranks media.
var contentRules = []contentRule{
	{[]string{"email", "mail", "message"}, CategoryCommunication},
	{[]string{"file", "document", "pdf"}, CategoryDocument},
	{[]string{"system", "log", "error"}, CategorySystem},
	{[]string{"image", "video", "media"}, CategoryMedia},
}

// CategorizeContent assigns a category by case-insensitive substring search
// over serialized record text. Returns CategoryOther when no rule matches.
func CategorizeContent(text string) Category {
	lower := strings.ToLower(text)
	for _, rule := range contentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// CategorizeMIME assigns a category from a MIME type prefix: image/* is
// media, everything else is document.
func CategorizeMIME(mimeType string) Category {
	if strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return CategoryMedia
	}
	return CategoryDocument
}
