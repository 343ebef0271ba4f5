// Package translate maps the classifier's English plant and disease
// labels to the Vietnamese names the knowledge graph is keyed on.
package translate

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table holds the two lookup dictionaries. Keys are the English labels
// as the classifier emits them ("tomato", "Early_blight").
type Table struct {
	Plants   map[string]string `yaml:"plants"`
	Diseases map[string]string `yaml:"diseases"`
}

type Translator struct {
	table      Table
	normalized map[string]string
}

// New builds a translator over the given table. An override file on disk
// replaces the built-in defaults when operators curate their own names.
func New(table Table) *Translator {
	t := &Translator{table: table, normalized: make(map[string]string, len(table.Plants)+len(table.Diseases))}
	for key, value := range table.Plants {
		t.normalized[normalize(key)] = value
	}
	for key, value := range table.Diseases {
		t.normalized[normalize(key)] = value
	}
	return t
}

func Load(path string) (*Translator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read translation table: %w", err)
	}
	var table Table
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse translation table: %w", err)
	}
	return New(table), nil
}

// TranslateLabel returns the Vietnamese name for a label. Unknown labels
// fall back to a readable title-cased form of the English text; the
// lookup downstream simply finds no case for them.
func (t *Translator) TranslateLabel(name string) string {
	if name == "" {
		return ""
	}
	if value, ok := t.table.Plants[name]; ok {
		return value
	}
	if value, ok := t.table.Diseases[name]; ok {
		return value
	}
	if value, ok := t.normalized[normalize(name)]; ok {
		return value
	}
	return titleCase(normalize(name))
}

func normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "_", " ")
	text = strings.ReplaceAll(text, "-", " ")
	return strings.TrimSpace(text)
}

func titleCase(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Default is the built-in dictionary covering the classifier's label set.
func Default() Table {
	return Table{
		Plants: map[string]string{
			"apple":      "Táo",
			"cherry":     "Anh đào",
			"corn":       "Ngô",
			"grape":      "Nho",
			"peach":      "Đào",
			"pepper":     "Ớt",
			"potato":     "Khoai tây",
			"strawberry": "Dâu tây",
			"tomato":     "Cà chua",
			"guava":      "Ổi",
			"mango":      "Xoài",
			"orange":     "Cam",
			"papaya":     "Đu đủ",
			"banana":     "Chuối",
			"rice":       "Lúa",
			"soybean":    "Đậu nành",
			"wheat":      "Lúa mì",
		},
		Diseases: map[string]string{
			"Apple_scab":                    "Bệnh ghẻ táo",
			"Black_rot":                     "Bệnh thối đen",
			"Cedar_apple_rust":              "Bệnh gỉ sắt táo",
			"healthy":                       "Khỏe mạnh",
			"Late_blight":                   "Bệnh sương mai muộn",
			"Leaf_Mold":                     "Bệnh mốc lá",
			"Leaf_Spot":                     "Bệnh đốm lá",
			"Powdery_Mildew":                "Bệnh phấn trắng",
			"Rust":                          "Bệnh gỉ sắt",
			"Scab":                          "Bệnh ghẻ",
			"Target_Spot":                   "Bệnh đốm mục tiêu",
			"Tomato_mosaic_virus":           "Virus khảm cà chua",
			"Tomato_Yellow_Leaf_Curl_Virus": "Virus vàng lá xoăn cà chua",
			"Two-spotted_spider_mite":       "Nhện đỏ hai chấm",
			"Bacterial_spot":                "Bệnh đốm vi khuẩn",
			"Early_blight":                  "Bệnh sương mai sớm",
			"Septoria_leaf_spot":            "Bệnh đốm lá Septoria",
			"Spider_mites":                  "Nhện đỏ",
			"Common_rust":                   "Bệnh gỉ sắt thường",
			"Northern_Leaf_Blight":          "Bệnh cháy lá phía bắc",
			"Cercospora_leaf_spot":          "Bệnh đốm lá Cercospora",
			"Gray_leaf_spot":                "Bệnh đốm lá xám",
			"insect_bite":                   "Vết cắn côn trùng",
			"scorch":                        "Cháy lá",
		},
	}
}
