package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent string, stylesheets ...string) string
}

// CSSInjection injects stylesheets as <style> blocks into HTML content.
type CSSInjection struct{}

// InjectCSS inserts one <style> block per non-empty stylesheet, in order,
// so later sheets override earlier ones.
// Tries </head> first, then after <body>, then prepends to the HTML.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent string, stylesheets ...string) string {
	if ctx.Err() != nil {
		return htmlContent
	}

	var block strings.Builder
	for _, css := range stylesheets {
		if css == "" {
			continue
		}
		block.WriteString("<style>")
		block.WriteString(sanitizeCSS(css))
		block.WriteString("</style>")
	}
	if block.Len() == 0 {
		return htmlContent
	}
	styleBlock := block.String()
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so a stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
