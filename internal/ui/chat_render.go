package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/darkai/darkchat/internal/chat"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	starItalic        = regexp.MustCompile(`(^|[^*])\*([^*\s][^*]*)\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	numberedItem      = regexp.MustCompile(`^(\d{1,3})\. (.*)$`)
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// renderInlineMarkdown applies bold, italic, code and link formatting to a line
func renderInlineMarkdown(line string) string {
	// Code spans are swapped for placeholders so nothing inside them is styled
	var spans []string
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		spans = append(spans, MarkdownInlineCodeStyle.Render(code))
		return fmt.Sprintf("\x00CODE%d\x00", len(spans)-1)
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return MarkdownBoldStyle.Render(boldPattern.FindStringSubmatch(match)[1])
	})

	line = starItalic.ReplaceAllStringFunc(line, func(match string) string {
		parts := starItalic.FindStringSubmatch(match)
		return parts[1] + MarkdownItalicStyle.Render(parts[2])
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		return MarkdownLinkStyle.Render(parts[1]) + " (" + MarkdownLinkStyle.Render(parts[2]) + ")"
	})

	for i, rendered := range spans {
		line = strings.Replace(line, fmt.Sprintf("\x00CODE%d\x00", i), rendered, 1)
	}
	return line
}

// wrapText wraps text to width, keeping ANSI sequences intact
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wordwrap(text, width, "")
}

// indentContinuation prefixes every line after the first
func indentContinuation(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

func renderMarkdownLine(line string, width int) string {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "### "):
		return MarkdownH3Style.Render(strings.TrimPrefix(trimmed, "### "))
	case strings.HasPrefix(trimmed, "## "):
		return MarkdownH2Style.Render(strings.TrimPrefix(trimmed, "## "))
	case strings.HasPrefix(trimmed, "# "):
		return MarkdownH1Style.Render(strings.TrimPrefix(trimmed, "# "))
	case trimmed == "---" || trimmed == "***":
		return lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", min(width, 32)))
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		bullet := MarkdownListBulletStyle.Render("•")
		wrapped := wrapText(renderInlineMarkdown(trimmed[2:]), width-4)
		return "  " + bullet + " " + indentContinuation(wrapped, "    ")
	}

	if m := numberedItem.FindStringSubmatch(trimmed); m != nil {
		number := MarkdownListBulletStyle.Render(m[1] + ".")
		wrapped := wrapText(renderInlineMarkdown(m[2]), width-6)
		return "  " + number + " " + indentContinuation(wrapped, "     ")
	}

	return wrapText(renderInlineMarkdown(line), width)
}

// renderMarkdown renders markdown content with syntax-highlighted code blocks
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result strings.Builder
	inCodeBlock := false
	codeLang := ""
	var code strings.Builder

	flushCode := func() {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(highlightCode(code.String(), codeLang))
		result.WriteString("\n")
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeLang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				code.Reset()
			} else {
				inCodeBlock = false
				flushCode()
				codeLang = ""
			}
			continue
		}

		if inCodeBlock {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}
		result.WriteString(renderMarkdownLine(line, width))
		result.WriteString("\n")
	}

	// Unterminated fence: show what we have
	if inCodeBlock {
		flushCode()
	}

	return strings.TrimRight(result.String(), "\n")
}

// renderImageMessage draws an image reply as a framed link to the file
func renderImageMessage(ref, resolved string, width int) string {
	var sb strings.Builder
	sb.WriteString(MarkdownBoldStyle.Render("🖼  Image ready"))
	sb.WriteString("\n")
	sb.WriteString(MarkdownLinkStyle.Render(resolved))
	if ref != resolved {
		sb.WriteString("\n")
		sb.WriteString(ChatTimestampStyle.Render(ref))
	}

	boxWidth := width
	if boxWidth > 72 {
		boxWidth = 72
	}
	return ChatImageStyle.Width(boxWidth).Render(sb.String())
}

// renderMessage renders one log entry with its role label and time
func renderMessage(msg chat.Message, body string) string {
	var label string
	if msg.Role == chat.RoleUser {
		label = ChatUserStyle.Render("You")
	} else {
		label = ChatAssistantStyle.Render("Dark AI")
	}
	header := label + " " + ChatTimestampStyle.Render(msg.FormatTime())
	return header + "\n" + body
}

// renderWaiting renders the typing indicator with a stopwatch
func renderWaiting(verb string, frame int, elapsedText string) string {
	dots := strings.Repeat(".", frame%3+1)
	stopwatch := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(elapsedText)
	return ChatAssistantStyle.Render("Dark AI") + "\n" +
		StatusLoadingStyle.Render(verb+dots+" ") + stopwatch
}
