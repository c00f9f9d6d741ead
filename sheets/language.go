package sheets

import (
	"fmt"
	"strings"

	"github.com/classicadventures/mixcreator/util"
)

// Language is a game localization. Code is the letter that ends TRx extensions.
type Language struct {
	Description string
	Code        string
	Name        string
}

func (l Language) String() string {
	return fmt.Sprintf("%s (%s)", l.Description, l.Name)
}

// Languages lists the supported localizations, English first.
var Languages = []Language{
	{Description: "EN_ANY", Code: "E", Name: "English"},
	{Description: "DE_DEU", Code: "G", Name: "German"},
	{Description: "FR_FRA", Code: "F", Name: "French"},
	{Description: "IT_ITA", Code: "I", Name: "Italian"},
	{Description: "ES_ESP", Code: "S", Name: "Spanish"},
	{Description: "RU_RUS", Code: "R", Name: "Russian"},
}

// English is the default language.
var English = Languages[0]

// LanguageByDescription finds a language by its description (EN_ANY, DE_DEU, ...).
// An empty description selects English.
func LanguageByDescription(desc string) (Language, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return English, nil
	}
	for _, l := range Languages {
		if strings.EqualFold(l.Description, desc) {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: unsupported language %q (valid: %s)", util.ErrConfiguration, desc, strings.Join(descriptions(), ", "))
}

func descriptions() []string {
	out := make([]string, len(Languages))
	for i, l := range Languages {
		out[i] = l.Description
	}
	return out
}
