package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kitapkulubu.link/models"
	"kitapkulubu.link/repositories"
)

// Takvim servisi hataları.
var ErrCalendarDisabled = errors.New("üye takvim aboneliğini kapatmış")

// ICalendarService üyeye özel iCalendar akışı üretir.
type ICalendarService interface {
	FeedForMember(ctx context.Context, webKey string) (string, error)
}

// CalendarService ICalendarService arayüzünü uygular.
type CalendarService struct {
	memberRepo      repositories.IMemberRepository
	eventRepo       repositories.IEventRepository
	participantRepo repositories.IParticipantRepository
}

// NewCalendarService yeni bir CalendarService örneği oluşturur.
func NewCalendarService() ICalendarService {
	return &CalendarService{
		memberRepo:      repositories.NewMemberRepository(),
		eventRepo:       repositories.NewEventRepository(),
		participantRepo: repositories.NewParticipantRepository(),
	}
}

// icalEscape virgül, noktalı virgül ve satır sonlarını iCalendar kuralına
// göre kaçırır.
func icalEscape(s string) string {
	return strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	).Replace(s)
}

func icalTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// FeedForMember üyenin katıldığı etkinliklerden VCALENDAR metni üretir.
// Takvim aboneliği kapalı üyeler için akış verilmez.
func (s *CalendarService) FeedForMember(ctx context.Context, webKey string) (string, error) {
	member, err := s.memberRepo.FindByWebKey(ctx, webKey)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrMemberNotFound
		}
		return "", err
	}
	if !member.Active {
		return "", ErrMemberNotFound
	}
	if !member.ICal {
		return "", ErrCalendarDisabled
	}

	participants, err := s.participantRepo.ListByMember(ctx, member.ID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//kitapkulubu.link//Takvim//TR\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")
	for i := range participants {
		p := &participants[i]
		if p.Status == models.RSVPStatusNotAttending {
			continue
		}
		event := p.Event
		if event.ID == 0 {
			continue
		}
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s@kitapkulubu.link\r\n", icalEscape(event.EventKey))
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", icalTime(time.Now()))
		fmt.Fprintf(&b, "DTSTART:%s\r\n", icalTime(event.StartsAt))
		fmt.Fprintf(&b, "DTEND:%s\r\n", icalTime(event.EndsAt))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", icalEscape(event.Summary))
		if strings.TrimSpace(event.Body) != "" {
			fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", icalEscape(event.Body))
		}
		if p.Waiting {
			b.WriteString("STATUS:TENTATIVE\r\n")
		} else if p.Status == models.RSVPStatusAttending {
			b.WriteString("STATUS:CONFIRMED\r\n")
		} else {
			b.WriteString("STATUS:TENTATIVE\r\n")
		}
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")
	return b.String(), nil
}

var _ ICalendarService = (*CalendarService)(nil)
