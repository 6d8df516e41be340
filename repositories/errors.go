package repositories

import "errors"

// ErrNotFound kayıt bulunamadığında tüm repository'lerin döndürdüğü ortak hata.
// Servis katmanı bunu kendi sentinel hatasına çevirir.
var ErrNotFound = errors.New("kayıt bulunamadı")
