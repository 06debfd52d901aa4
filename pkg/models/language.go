package models

import (
	"github.com/uptrace/bun"
)

// Language codes supported by the catalog. The set is fixed and seeded by
// the initial migration.
const (
	LanguageRussian = "ru"
	LanguageFrench  = "fr"
	LanguageGerman  = "de"
	LanguageEnglish = "en"
)

// LanguageCodes lists every valid language code.
var LanguageCodes = []string{
	LanguageRussian,
	LanguageFrench,
	LanguageGerman,
	LanguageEnglish,
}

type Language struct {
	bun.BaseModel `bun:"table:languages,alias:l"`

	ID   int    `bun:",pk,nullzero" json:"id"`
	Code string `bun:",nullzero" json:"code"`
	Name string `bun:",nullzero" json:"name"`
}
