package db

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"plate-service/internal/model"
	"plate-service/internal/pattern"
)

// seedCatalogVersion marks the static defaults below. Bump it when the
// catalog changes; seeding reruns once per version and never touches a
// country that already has templates.
const seedCatalogVersion = "2"

const seedVersionKey = "seed_catalog_version"

type seedCountry struct {
	id          string
	displayName string
	templates   []seedTemplate
}

type seedTemplate struct {
	pattern     string
	displayName string
	priority    int
}

// Seeded defaults are trusted as-is and do not pass through the rule
// engine; the Israeli formats are purely numeric, which the engine would
// reject for a user-authored template.
var seedCatalog = []seedCountry{
	{
		id:          "IL",
		displayName: "Israel",
		templates: []seedTemplate{
			{pattern: "NNNNNN", displayName: "Six digit", priority: 1},
			{pattern: "NNNNNNN", displayName: "Seven digit", priority: 2},
		},
	},
	{
		id:          "GB",
		displayName: "United Kingdom",
		templates: []seedTemplate{
			{pattern: "LLNNLLL", displayName: "Current style", priority: 1},
		},
	},
	{
		id:          "DE",
		displayName: "Germany",
		templates: []seedTemplate{
			{pattern: "LLLNNNN", displayName: "Standard", priority: 1},
		},
	},
	{
		id:          "FR",
		displayName: "France",
		templates: []seedTemplate{
			{pattern: "LLNNNLL", displayName: "SIV", priority: 1},
		},
	},
	{
		id:          "NL",
		displayName: "Netherlands",
		templates: []seedTemplate{
			{pattern: "LLNNNLL", displayName: "Sidecode", priority: 1},
		},
	},
}

func seed(db *gorm.DB, log zerolog.Logger) error {
	var meta struct {
		Key   string
		Value string
	}
	err := db.Table("schema_meta").Where("key = ?", seedVersionKey).Take(&meta).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if meta.Value == seedCatalogVersion {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range seedCatalog {
			var country model.Country
			err := tx.Where("id = ?", entry.id).Take(&country).Error
			if err == gorm.ErrRecordNotFound {
				country = model.Country{ID: entry.id, DisplayName: entry.displayName, Enabled: true}
				if err := tx.Create(&country).Error; err != nil {
					return err
				}
				log.Info().Str("country", entry.id).Msg("seeded country")
			} else if err != nil {
				return err
			}

			var existing int64
			if err := tx.Model(&model.PlateTemplate{}).Where("country_id = ?", entry.id).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			for _, tplSeed := range entry.templates {
				tpl := model.PlateTemplate{
					CountryID:    entry.id,
					Pattern:      tplSeed.pattern,
					DisplayName:  tplSeed.displayName,
					Priority:     tplSeed.priority,
					Active:       true,
					Description:  pattern.GenerateDescription(tplSeed.pattern),
					RegexPattern: pattern.Compile(tplSeed.pattern).Regex(),
					Source:       model.TemplateSourceSeeded,
				}
				if err := tx.Create(&tpl).Error; err != nil {
					return err
				}
			}
			log.Info().Str("country", entry.id).Int("templates", len(entry.templates)).Msg("seeded default templates")
		}

		return tx.Exec(
			`INSERT INTO schema_meta (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = (EXTRACT(EPOCH FROM NOW()) * 1000)::BIGINT`,
			seedVersionKey, seedCatalogVersion,
		).Error
	})
}
