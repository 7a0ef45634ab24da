package mailer

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// Message 表示一封待派送的纯文本邮件
type Message struct {
	To      string
	Subject string
	Body    string
	ReplyTo string // 可选，留空不写 Reply-To 头
}

// Dispatcher 定义邮件派送操作
//
// Send 只返回是否成功，失败原因记录到日志，不向调用方传播。
type Dispatcher interface {
	Send(msg Message) bool
}

// SMTPDispatcher 通过 SMTP STARTTLS 会话派送邮件，每次发送建立一条新连接
type SMTPDispatcher struct {
	addr     string // host:port
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSMTPDispatcher 创建 SMTP 派送器
func NewSMTPDispatcher(host string, port int, username, password, from string, logger *zap.Logger) *SMTPDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if from == "" {
		from = username
	}
	return &SMTPDispatcher{
		addr:     fmt.Sprintf("%s:%d", host, port),
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// Send 建立 STARTTLS 会话、PLAIN 认证并投递邮件
func (d *SMTPDispatcher) Send(msg Message) bool {
	auth := sasl.NewPlainClient("", d.username, d.password)
	reader := strings.NewReader(d.render(msg))

	if err := smtp.SendMail(d.addr, auth, d.from, []string{msg.To}, reader); err != nil {
		d.logger.Error("email sending failed",
			zap.String("to", msg.To),
			zap.Error(err))
		return false
	}
	return true
}

// render 生成 RFC 5322 纯文本报文，头与正文之间以空行分隔
func (d *SMTPDispatcher) render(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", d.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return b.String()
}
