package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage(&Message{
		From:        "AI Magazine <noreply@example.com>",
		To:          []string{"a@example.com", "b@example.com"},
		Subject:     "Hello",
		Body:        "body",
		ContentType: "text/plain; charset=UTF-8",
	}))

	assert.True(t, strings.HasPrefix(raw, "Content-Type: text/plain; charset=UTF-8\r\n"))
	assert.Contains(t, raw, "To: a@example.com, b@example.com\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nbody"))
	assert.NotContains(t, raw, "Cc:")
	assert.Contains(t, raw, "Subject: Hello\r\n", "ASCII 主题不编码")

	raw = string(buildMessage(&Message{Subject: "Bài viết chờ duyệt", ContentType: "text/html"}))
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
}

func TestClientEnabled(t *testing.T) {
	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	assert.False(t, NewClient(&Config{}).Enabled())
	assert.True(t, NewClient(&Config{Host: "smtp.example.com"}).Enabled())
}

func TestSendValidation(t *testing.T) {
	c := NewClient(&Config{Host: "smtp.example.com"})
	assert.Error(t, c.Send(&Message{To: []string{"a@example.com"}, Subject: "x"}), "发件人为空")

	c = NewClient(&Config{Host: "smtp.example.com", From: "noreply@example.com"})
	assert.Error(t, c.Send(&Message{Subject: "x"}), "收件人为空")
	assert.Error(t, c.Send(&Message{To: []string{"a@example.com"}}), "主题为空")
}

func TestReviewRequestTemplate(t *testing.T) {
	tmpl, err := NewTemplate(ReviewRequestTemplate)
	require.NoError(t, err)

	out, err := tmpl.Render(ReviewRequestData{
		SiteName:     "AI Magazine",
		ArticleTitle: "<Tin nóng>",
		Provider:     "openai",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;Tin nóng&gt;")
	assert.NotContains(t, out, "Duyệt bài", "没有链接时不显示按钮")
	assert.NotContains(t, out, "<blockquote")

	out, err = tmpl.Render(ReviewRequestData{
		SiteName:     "AI Magazine",
		ArticleTitle: "Tin nóng",
		Excerpt:      "Tóm tắt",
		Provider:     "anthropic",
		Model:        "claude",
		ReviewURL:    "http://localhost:5173/admin/rewritten-articles/3",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "anthropic / claude")
	assert.Contains(t, out, "Tóm tắt")
	assert.Contains(t, out, `href="http://localhost:5173/admin/rewritten-articles/3"`)
}
