package models

// ForwardedMail dışarıdan (IMAP yönlendirme) gelen e-postanın kaydı.
// İçerik burada tutulmaz; yalnızca yönlendirme ve işlenme durumu izlenir.
type ForwardedMail struct {
	BaseModel
	MessageID string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Subject   string `gorm:"type:varchar(500)"`
	Sender    string `gorm:"type:varchar(255);not null;index"`

	TargetType ChatTarget `gorm:"type:varchar(20)"` // Yönlendirilecek hedef
	TargetID   uint

	Processed bool   `gorm:"default:false;index"`
	Status    string `gorm:"type:varchar(100)"`
}
