package models

// GroupType grup türü. Her tür kendi GroupNo aralığına sahiptir;
// aralık kontrolü servis katmanında yapılır.
type GroupType int

const (
	GroupTypeClub   GroupType = 1 // Okuma kulübü grubu (GroupNo 1-999)
	GroupTypeSelect GroupType = 2 // Seçim listesi grubu (GroupNo 1000-1999)
	GroupTypeLinked GroupType = 3 // Hesap (User) bağlantılı grup (GroupNo 3000+)
)

// GroupNo aralık sınırları.
const (
	GroupNoClubMin   = 1
	GroupNoClubMax   = 999
	GroupNoSelectMin = 1000
	GroupNoSelectMax = 1999
	GroupNoLinkedMin = 3000
)

// Group üye grubu. Etkinlik üretim şablonları grupta tutulur:
// bir Meeting'den Event üretilirken {day} {group} {book} {author}
// yertutucuları doldurulur.
type Group struct {
	BaseModel
	GroupNo     int       `gorm:"uniqueIndex;not null"` // Kullanıcının verdiği grup numarası
	Type        GroupType `gorm:"not null;index"`
	Tag         string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:text"`
	URL         string    `gorm:"type:varchar(500)"`

	// Etkinlik üretim şablonları
	EventKeyTemplate     string `gorm:"type:varchar(255)"`
	EventSummaryTemplate string `gorm:"type:varchar(255)"`
	EventBodyTemplate    string `gorm:"type:text"`
	DefaultMaxAttend     int    `gorm:"default:0"` // 0 = kapasite sınırsız

	Members []GroupMember `gorm:"foreignKey:GroupID"`
}

// ValidNoForType GroupNo'nun türün aralığında olup olmadığını kontrol eder.
func (g *Group) ValidNoForType() bool {
	switch g.Type {
	case GroupTypeClub:
		return g.GroupNo >= GroupNoClubMin && g.GroupNo <= GroupNoClubMax
	case GroupTypeSelect:
		return g.GroupNo >= GroupNoSelectMin && g.GroupNo <= GroupNoSelectMax
	case GroupTypeLinked:
		return g.GroupNo >= GroupNoLinkedMin
	default:
		return false
	}
}

// GroupMember grup×üye bağlantısı.
type GroupMember struct {
	BaseModel
	GroupID  uint `gorm:"not null;index:idx_group_member,unique"`
	MemberID uint `gorm:"not null;index:idx_group_member,unique"`

	Group  Group  `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Member Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
