package chartdoc

import (
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy

	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// SanitizeTitle keeps the inline markup plotly understands in titles and
// strips everything else.
func SanitizeTitle(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(titleSanitizer().Sanitize(trimmed))
}

// DescriptionHTML converts a markdown description into sanitized HTML.
// Raw HTML embedded in the markdown goes through the same policy as user
// generated content.
func DescriptionHTML(source string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ""
	}
	// parsers keep state between documents
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	rendered := markdown.ToHTML([]byte(trimmed), p, renderer)
	return strings.TrimSpace(string(descriptionSanitizer().SanitizeBytes(rendered)))
}

func titleSanitizer() *bluemonday.Policy {
	titlePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "sup", "sub", "br")
		titlePolicy = policy
	})
	return titlePolicy
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}
