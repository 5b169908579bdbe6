package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/go-ini/ini"
	"polyglotCMS/internal/models"
)

// Provider отдает строки интерфейса по паре {локаль, ключ}.
// Catalogs are loaded once at startup from locales/<locale>.ini.
type Provider struct {
	catalogs      map[string]map[string]string
	defaultLocale string
}

func NewProvider(localesDir, defaultLocale string) (*Provider, error) {
	catalogs := make(map[string]map[string]string)

	for _, locale := range models.Languages {
		path := filepath.Join(localesDir, locale+".ini")

		file, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки каталога локали %s: %w", locale, err)
		}

		messages := make(map[string]string)
		for _, section := range file.Sections() {
			prefix := ""
			if section.Name() != ini.DefaultSection {
				prefix = section.Name() + "."
			}
			for _, key := range section.Keys() {
				messages[prefix+key.Name()] = key.Value()
			}
		}

		catalogs[locale] = messages
	}

	if _, ok := catalogs[defaultLocale]; !ok {
		return nil, fmt.Errorf("каталог для локали по умолчанию %s не загружен", defaultLocale)
	}

	return &Provider{
		catalogs:      catalogs,
		defaultLocale: defaultLocale,
	}, nil
}

// Message returns the display string for the key, falling back to the
// default locale and then to the key itself.
func (p *Provider) Message(locale, key string) string {
	if messages, ok := p.catalogs[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}

	if msg, ok := p.catalogs[p.defaultLocale][key]; ok {
		return msg
	}

	return key
}

// Messages returns the whole catalog for a locale.
func (p *Provider) Messages(locale string) (map[string]string, bool) {
	messages, ok := p.catalogs[locale]
	return messages, ok
}

func (p *Provider) HasLocale(locale string) bool {
	_, ok := p.catalogs[locale]
	return ok
}
