package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template html/template 包装，自动转义数据
type Template struct {
	tmpl *template.Template
}

func NewTemplate(htmlContent string) (*Template, error) {
	tmpl, err := template.New("email").Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("解析邮件模板失败: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

func (t *Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板失败: %w", err)
	}
	return buf.String(), nil
}

// SendWithTemplate 渲染后按 HTML 发送
func (c *Client) SendWithTemplate(to []string, subject string, tmpl *Template, data any) error {
	body, err := tmpl.Render(data)
	if err != nil {
		return err
	}
	return c.SendHTML(to, subject, body)
}

// ReviewRequestTemplate 改写稿待审核通知
const ReviewRequestTemplate = `<!DOCTYPE html>
<html lang="vi">
<head><meta charset="UTF-8"><title>{{.SiteName}}</title></head>
<body style="margin:0;background:#f4f5f7;font-family:Helvetica,Arial,sans-serif;color:#222;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0">
  <tr><td align="center" style="padding:24px 12px;">
    <table role="presentation" width="560" cellpadding="0" cellspacing="0" style="background:#fff;border-radius:6px;">
      <tr><td style="padding:20px 28px;border-bottom:3px solid #d9480f;font-size:18px;font-weight:bold;">{{.SiteName}}</td></tr>
      <tr><td style="padding:24px 28px;font-size:14px;line-height:1.6;">
        <p style="margin:0 0 12px;">Có một bản viết lại mới đang chờ biên tập viên duyệt.</p>
        <p style="margin:0 0 4px;color:#666;">Bài gốc</p>
        <p style="margin:0 0 12px;font-size:16px;font-weight:bold;">{{.ArticleTitle}}</p>
        {{with .Excerpt}}<blockquote style="margin:0 0 12px;padding-left:12px;border-left:3px solid #ddd;color:#555;">{{.}}</blockquote>{{end}}
        <p style="margin:0 0 16px;color:#666;">Nguồn AI: {{.Provider}}{{with .Model}} / {{.}}{{end}}</p>
        {{with .ReviewURL}}<p style="margin:0;"><a href="{{.}}" style="background:#d9480f;color:#fff;padding:10px 20px;border-radius:4px;text-decoration:none;">Duyệt bài</a></p>{{end}}
      </td></tr>
      <tr><td style="padding:14px 28px;font-size:12px;color:#999;">Email tự động, vui lòng không trả lời.</td></tr>
    </table>
  </td></tr>
</table>
</body>
</html>`

var reviewRequest = template.Must(template.New("review_request").Parse(ReviewRequestTemplate))

// ReviewRequestData Excerpt、Model、ReviewURL 可为空
type ReviewRequestData struct {
	SiteName     string
	ArticleTitle string
	Excerpt      string
	Provider     string
	Model        string
	ReviewURL    string
}

// SendReviewRequest 通知审核人员
func (c *Client) SendReviewRequest(to []string, data ReviewRequestData) error {
	return c.SendWithTemplate(to,
		fmt.Sprintf("[%s] Bài viết chờ duyệt: %s", data.SiteName, data.ArticleTitle),
		&Template{tmpl: reviewRequest}, data)
}
