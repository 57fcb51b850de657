package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DivaIsReal/catatduit/internal/parser"
)

// Keywords is the classification vocabulary. It is configuration data,
// not code: a deployment can swap the whole vocabulary with a YAML file
// without recompiling the parser.
type Keywords struct {
	Income     []string       `yaml:"income"`
	Categories []CategoryRule `yaml:"categories"`
}

// CategoryRule is one ordered expense category with its trigger words.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// ParserRules converts the configured categories into the parser's rule
// type, preserving order.
func (k Keywords) ParserRules() []parser.CategoryRule {
	rules := make([]parser.CategoryRule, len(k.Categories))
	for i, c := range k.Categories {
		rules[i] = parser.CategoryRule{Name: c.Name, Keywords: c.Keywords}
	}
	return rules
}

// LoadKeywords reads a keyword table from a YAML file.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("reading keywords file: %w", err)
	}
	var k Keywords
	if err := yaml.Unmarshal(data, &k); err != nil {
		return Keywords{}, fmt.Errorf("parsing keywords file: %w", err)
	}
	if len(k.Income) == 0 && len(k.Categories) == 0 {
		return Keywords{}, fmt.Errorf("keywords file %s defines no keywords", path)
	}
	return k, nil
}

// DefaultKeywords is the built-in Indonesian vocabulary.
func DefaultKeywords() Keywords {
	return Keywords{
		Income: []string{
			"gaji", "terima", "transfer", "bonus", "freelance",
			"pendapatan", "dapat", "masuk", "bayaran", "honor",
			"untung", "diterima", "income",
		},
		Categories: []CategoryRule{
			{Name: "Makan", Keywords: []string{
				"makan", "sarapan", "lunch", "dinner", "nasi", "ayam", "soto", "bakso",
				"mie", "kopi", "teh", "minum", "snack", "jajan", "cemilan", "food",
				"geprek", "seblak", "warteg", "resto", "restoran", "cafe", "kedai",
				"lapar", "kenyang", "minuman",
			}},
			{Name: "Transport", Keywords: []string{
				"transport", "grab", "gojek", "ojek", "taxi", "angkot", "bus",
				"bensin", "parkir", "tol", "kereta", "travel", "pergi", "pulang",
			}},
			{Name: "Belanja", Keywords: []string{
				"belanja", "beli", "baju", "celana", "sepatu", "tas",
				"shopee", "tokped", "tokopedia", "lazada", "blibli", "toko",
				"shopping", "shop",
			}},
			{Name: "Tagihan", Keywords: []string{
				"listrik", "air", "pdam", "wifi", "internet", "pulsa", "paket data",
				"token", "bayar", "cicilan", "angsuran", "pln", "tagihan",
			}},
			{Name: "Hiburan", Keywords: []string{
				"nonton", "bioskop", "film", "game", "main", "liburan", "wisata",
				"netflix", "spotify", "steam", "tiket", "jalan-jalan",
			}},
			{Name: "Kesehatan", Keywords: []string{
				"obat", "dokter", "rumah sakit", "rs", "klinik", "vitamin",
				"apotek", "medical", "checkup", "berobat", "sakit",
			}},
		},
	}
}
