// file: internals/services/mail/console.go
package mail

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// ConsoleService menulis email ke log. Dipakai saat SENDGRID_API_KEY kosong
// dan (mode Sync) di test.
type ConsoleService struct {
	From       string
	SubjPrefix string
	// Sync mengirim di goroutine pemanggil, tanpa output log.
	Sync bool

	mu   sync.Mutex
	sent []EmailMessage
}

var _ EmailService = (*ConsoleService)(nil)

func NewConsoleService(appName, fromEmail string) *ConsoleService {
	return &ConsoleService{From: fromEmail, SubjPrefix: "[" + appName + "] "}
}

// NewConsoleServiceMock: synchronous, silent, records everything.
func NewConsoleServiceMock() *ConsoleService {
	return &ConsoleService{From: "test@localhost", Sync: true}
}

func (svc *ConsoleService) SendMessages(messages ...*EmailMessage) {
	for _, msg := range messages {
		if svc.Sync {
			svc.sendMessage(msg)
			continue
		}
		go svc.sendMessage(msg)
	}
}

func (svc *ConsoleService) sendMessage(msg *EmailMessage) {
	if err := msg.Render(); err != nil {
		log.Printf("[MAIL][ERROR] %+v", err)
		return
	}
	if !msg.HasRecipients() || !msg.HasContent() {
		return
	}
	if !svc.Sync {
		log.Println(svc.format(msg))
	}
	svc.mu.Lock()
	svc.sent = append(svc.sent, *msg)
	svc.mu.Unlock()
}

func (svc *ConsoleService) format(msg *EmailMessage) string {
	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, a.String())
	}
	b := new(strings.Builder)
	_, _ = fmt.Fprintf(b, "From: %s\r\n", svc.From)
	_, _ = fmt.Fprintf(b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(b, "Subject: %s\r\n", svc.SubjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(b, "To: %s\r\n\r\n", strings.Join(to, ", "))
	_, _ = fmt.Fprintf(b, "%s\r\n", msg.TextContent)
	return b.String()
}

// Sent returns a copy of every delivered message.
func (svc *ConsoleService) Sent() []EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]EmailMessage, len(svc.sent))
	copy(out, svc.sent)
	return out
}
