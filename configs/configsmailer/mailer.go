package configsmailer

import (
	"os"
	"strconv"
	"sync"

	"gopkg.in/gomail.v2"
)

// Mailer SMTP üzerinden tekil e-posta gönderen ince sarmalayıcı.
// Son gönderim hatası saklanır; toplu gönderim döngüsü bunu kullanıcıya raporlar.
type Mailer struct {
	dialer *gomail.Dialer
	from   string

	mu      sync.Mutex
	lastErr error
}

var (
	instance *Mailer
	once     sync.Once
)

// GetMailer environment ayarlarından (SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASS, SMTP_FROM) tekil Mailer örneğini oluşturur.
func GetMailer() *Mailer {
	once.Do(func() {
		port, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
		instance = &Mailer{
			dialer: gomail.NewDialer(
				getEnv("SMTP_HOST", "localhost"),
				port,
				os.Getenv("SMTP_USER"),
				os.Getenv("SMTP_PASS"),
			),
			from: getEnv("SMTP_FROM", "kulup@kitapkulubu.link"),
		}
	})
	return instance
}

// Send tek bir HTML e-posta gönderir. Hata durumunda hatayı hem döndürür
// hem LastError'da saklar.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	err := m.dialer.DialAndSend(msg)

	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
	return err
}

// LastError son Send çağrısının hatasını döndürür (başarılıysa nil).
func (m *Mailer) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
