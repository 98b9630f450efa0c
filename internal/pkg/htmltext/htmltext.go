package htmltext

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// PlainText 提取 HTML 纯文本，块级元素之间以换行分隔
func PlainText(html string) string {
	if !strings.Contains(html, "<") {
		return collapse(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapse(html)
	}
	doc.Find("script, style, noscript, iframe").Remove()

	var parts []string
	blocks := doc.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre")
	if blocks.Length() == 0 {
		return collapse(doc.Text())
	}
	blocks.Each(func(_ int, s *goquery.Selection) {
		// 嵌套块只取最外层
		if s.ParentsFiltered("p, li, blockquote").Length() > 0 {
			return
		}
		if text := collapse(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}

// Excerpt 摘要：纯文本截断到 maxRunes，按词边界加省略号
func Excerpt(html string, maxRunes int) string {
	text := strings.Join(strings.Fields(PlainText(html)), " ")
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)[:maxRunes]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// FirstImage 第一张图片地址，没有返回空串
func FirstImage(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
